package recommendation

import (
	"context"
	"fmt"
	"sort"

	"myntraMarket/domain"
)

// contentSignal proposes attribute-similar products: same category,
// price within the content window of the target (skipped when the
// target carries no price), scored against the target and floored at
// MinSimilarity. Works for authenticated and anonymous subjects alike.
func (s *Service) contentSignal(
	ctx context.Context,
	target domain.Product,
) ([]Candidate, error) {

	filter := domain.ProductFilter{
		Category:   target.Category,
		ExcludeID:  target.ID,
		ActiveOnly: true,
	}
	if target.Price > 0 {
		filter.PriceMin = target.Price * (1 - s.cfg.ContentPriceWindow)
		filter.PriceMax = target.Price * (1 + s.cfg.ContentPriceWindow)
	}

	queryLimit := s.cfg.ContentLimit * 3

	products, err := s.catalogRepo.FindMany(ctx, filter, queryLimit)
	if err != nil {
		return nil, fmt.Errorf("load similar products: %w", err)
	}

	cands := make([]Candidate, 0, len(products))
	for _, p := range products {
		score := Similarity(target, p)
		if score <= s.cfg.MinSimilarity {
			continue
		}
		cands = append(cands, Candidate{
			Product: p,
			Score:   score,
			Reason:  domain.ReasonContent,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})

	if len(cands) > s.cfg.ContentLimit {
		cands = cands[:s.cfg.ContentLimit]
	}

	return cands, nil
}
