package recommendation

import (
	"sort"

	"myntraMarket/domain"
)

// Candidate is one product proposed by a single signal, scored on the
// signal's own scale (generally [0,1]). Candidates only live through
// fusion and are never persisted.
type Candidate struct {
	Product  domain.Product
	Score    float64
	Reason   domain.RecommendationReason
	Metadata map[string]any
}

type signalOutput struct {
	candidates []Candidate
	weight     float64
}

// fuse merges the signal outputs into one deduplicated ranked list.
// Every candidate contributes score x weight; a product proposed by
// several signals accumulates the weighted contributions and collects
// every reason tag. Ties keep first-seen order.
func fuse(outputs []signalOutput, limit int) []domain.Recommendation {
	type accumulator struct {
		rec   domain.Recommendation
		order int
	}

	byProduct := make(map[uint64]*accumulator)
	seen := 0

	for _, out := range outputs {
		for _, cand := range out.candidates {
			weighted := cand.Score * out.weight

			acc, ok := byProduct[cand.Product.ID]
			if !ok {
				product := cand.Product
				acc = &accumulator{
					rec: domain.Recommendation{
						ProductID: product.ID,
						Product:   &product,
						Metadata:  map[string]any{},
					},
					order: seen,
				}
				byProduct[cand.Product.ID] = acc
				seen++
			}

			acc.rec.Score += weighted
			acc.rec.Reasons = append(acc.rec.Reasons, cand.Reason)
			for k, v := range cand.Metadata {
				acc.rec.Metadata[k] = v
			}
		}
	}

	accs := make([]*accumulator, 0, len(byProduct))
	for _, acc := range byProduct {
		accs = append(accs, acc)
	}

	sort.SliceStable(accs, func(i, j int) bool {
		if accs[i].rec.Score != accs[j].rec.Score {
			return accs[i].rec.Score > accs[j].rec.Score
		}
		return accs[i].order < accs[j].order
	})

	if limit > 0 && len(accs) > limit {
		accs = accs[:limit]
	}

	recs := make([]domain.Recommendation, 0, len(accs))
	for _, acc := range accs {
		if len(acc.rec.Metadata) == 0 {
			acc.rec.Metadata = nil
		}
		recs = append(recs, acc.rec)
	}

	return recs
}
