package recommendation

import (
	"context"
	"fmt"
	"sort"

	"myntraMarket/domain"
)

// Engagement blend for cohort-viewed products. Values are per-product
// aggregates, so the raw engagement is divided by 100 before use.
const (
	engagementWeightViews     = 0.3
	engagementWeightTimeSpent = 0.2
	engagementWeightWishlist  = 0.25
	engagementWeightBag       = 0.25
)

// collaborativeSignal implements "users who viewed this also viewed".
// It correlates only authenticated viewers; anonymous views cannot be
// tied together across sessions. userID (when known) excludes the
// requesting subject's own views from the cohort aggregate.
func (s *Service) collaborativeSignal(
	ctx context.Context,
	target domain.Product,
	userID *uint,
) ([]Candidate, error) {

	viewers, err := s.behaviorRepo.RecentViewers(ctx, target.ID, s.cfg.CohortSize)
	if err != nil {
		return nil, fmt.Errorf("load viewer cohort: %w", err)
	}
	if len(viewers) == 0 {
		return nil, nil
	}

	cohort := make([]uint, 0, len(viewers))
	for _, v := range viewers {
		cohort = append(cohort, v.UserID)
	}

	stats, err := s.behaviorRepo.ProductsViewedBy(ctx, cohort, target.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("load cohort views: %w", err)
	}
	if len(stats) == 0 {
		return nil, nil
	}

	type scored struct {
		stat       domain.ProductViewStat
		engagement float64
	}

	scoredStats := make([]scored, 0, len(stats))
	for _, st := range stats {
		engagement := engagementWeightViews*float64(st.TotalViews) +
			engagementWeightTimeSpent*st.AvgTimeSpent +
			engagementWeightWishlist*float64(st.WishlistAdds) +
			engagementWeightBag*float64(st.BagAdds)
		scoredStats = append(scoredStats, scored{stat: st, engagement: engagement})
	}

	sort.SliceStable(scoredStats, func(i, j int) bool {
		if scoredStats[i].stat.UniqueViewers != scoredStats[j].stat.UniqueViewers {
			return scoredStats[i].stat.UniqueViewers > scoredStats[j].stat.UniqueViewers
		}
		return scoredStats[i].engagement > scoredStats[j].engagement
	})

	if len(scoredStats) > s.cfg.CollaborativeLimit {
		scoredStats = scoredStats[:s.cfg.CollaborativeLimit]
	}

	ids := make([]uint64, 0, len(scoredStats))
	for _, sc := range scoredStats {
		ids = append(ids, sc.stat.ProductID)
	}

	products, err := s.catalogRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cohort products: %w", err)
	}

	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cands := make([]Candidate, 0, len(scoredStats))
	for _, sc := range scoredStats {
		product, ok := byID[sc.stat.ProductID]
		if !ok {
			continue
		}

		score := sc.engagement / 100
		if score > 1 {
			score = 1
		}

		cands = append(cands, Candidate{
			Product: product,
			Score:   score,
			Reason:  domain.ReasonCollaborative,
			Metadata: map[string]any{
				"viewer_count": sc.stat.UniqueViewers,
				"total_views":  sc.stat.TotalViews,
			},
		})
	}

	return cands, nil
}
