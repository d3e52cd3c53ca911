package recommendation

import "myntraMarket/domain"

// Attribute weights of the similarity score. They sum to 1 so the
// result stays in [0,1].
const (
	simWeightCategory = 0.4
	simWeightPrice    = 0.4
	simWeightBrand    = 0.2
)

// Similarity scores how alike two products are from their attributes
// alone. Pure and commutative: Similarity(a, b) == Similarity(b, a).
//
// Category membership contributes 0.4 on an exact match, price
// proximity up to 0.4 (the bounded ratio min/max, so wildly different
// prices approach 0), and an identical brand adds 0.2.
func Similarity(a, b domain.Product) float64 {
	score := 0.0

	if a.Category != "" && a.Category == b.Category {
		score += simWeightCategory
	}

	if a.Price > 0 && b.Price > 0 {
		lo, hi := a.Price, b.Price
		if lo > hi {
			lo, hi = hi, lo
		}
		score += simWeightPrice * (lo / hi)
	}

	if a.Brand != "" && a.Brand == b.Brand {
		score += simWeightBrand
	}

	return score
}
