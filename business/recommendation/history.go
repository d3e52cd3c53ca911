package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"myntraMarket/domain"
)

// Rank weights of the history score: a product in the subject's top
// category list earns (K - rank) x 0.3, in the top brand list
// (K - rank) x 0.2, each factor clamped to [0,1].
const (
	historyCategoryWeight = 0.3
	historyBrandWeight    = 0.2
)

// historySignal recommends from the subject's own recent interests:
// tally category and brand frequency over the last month of views,
// then propose products matching the top buckets.
func (s *Service) historySignal(
	ctx context.Context,
	target domain.Product,
	userID uint,
) ([]Candidate, error) {

	since := time.Now().Add(-s.cfg.HistoryLookback)

	events, err := s.behaviorRepo.SubjectHistory(ctx, userID, since, target.ID, s.cfg.HistoryEventCap)
	if err != nil {
		return nil, fmt.Errorf("load subject history: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	categoryFreq := make(map[string]int)
	brandFreq := make(map[string]int)
	for _, ev := range events {
		if ev.Product == nil {
			continue
		}
		if ev.Product.Category != "" {
			categoryFreq[ev.Product.Category]++
		}
		if ev.Product.Brand != "" {
			brandFreq[ev.Product.Brand]++
		}
	}

	topCategories := topByFrequency(categoryFreq, s.cfg.TopCategories)
	topBrands := topByFrequency(brandFreq, s.cfg.TopBrands)
	if len(topCategories) == 0 && len(topBrands) == 0 {
		return nil, nil
	}

	products, err := s.catalogRepo.FindByCategoryOrBrand(ctx, topCategories, topBrands, target.ID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load interest products: %w", err)
	}

	categoryRank := rankOf(topCategories)
	brandRank := rankOf(topBrands)

	cands := make([]Candidate, 0, len(products))
	for _, p := range products {
		score := 0.0

		if rank, ok := categoryRank[p.Category]; ok {
			factor := float64(s.cfg.TopCategories-rank) * historyCategoryWeight
			score += clamp01(factor)
		}
		if rank, ok := brandRank[p.Brand]; ok {
			factor := float64(s.cfg.TopBrands-rank) * historyBrandWeight
			score += clamp01(factor)
		}

		if score == 0 {
			continue
		}

		cands = append(cands, Candidate{
			Product: p,
			Score:   clamp01(score),
			Reason:  domain.ReasonUserBehavior,
		})
	}

	return cands, nil
}

// topByFrequency returns up to k keys ordered by descending count,
// ties broken lexically so the ranking is deterministic.
func topByFrequency(freq map[string]int, k int) []string {
	keys := make([]string, 0, len(freq))
	for key := range freq {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}

func rankOf(keys []string) map[string]int {
	ranks := make(map[string]int, len(keys))
	for i, key := range keys {
		ranks[key] = i
	}
	return ranks
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
