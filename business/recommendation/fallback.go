package recommendation

import (
	"context"
	"fmt"

	"myntraMarket/domain"
)

// popularitySignal is the anonymous-path companion to the content
// signal: active products ranked by the catalog's popularity blend
// (rating x 20 + rating_count x 2 + popularity), each carrying the
// fixed popularity score. The cap is 1.5x the requested limit so the
// content signal still decides most of the final order.
func (s *Service) popularitySignal(
	ctx context.Context,
	target domain.Product,
	limit int,
) ([]Candidate, error) {

	candidateCap := limit * 3 / 2
	if candidateCap < limit {
		candidateCap = limit
	}

	products, err := s.catalogRepo.FindPopular(ctx, target.ID, candidateCap)
	if err != nil {
		return nil, fmt.Errorf("load popular products: %w", err)
	}

	cands := make([]Candidate, 0, len(products))
	for _, p := range products {
		cands = append(cands, Candidate{
			Product: p,
			Score:   s.cfg.PopularityScore,
			Reason:  domain.ReasonPopularity,
		})
	}

	return cands, nil
}
