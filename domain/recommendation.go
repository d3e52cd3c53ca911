package domain

import "time"

// RecommendationReason tags which signal proposed a product. The set is
// closed; handlers render these verbatim in API responses.
type RecommendationReason string

const (
	ReasonCollaborative RecommendationReason = "collaborative_filtering"
	ReasonContent       RecommendationReason = "content_similarity"
	ReasonUserBehavior  RecommendationReason = "user_behavior"
	ReasonWishlist      RecommendationReason = "wishlist_pattern"
	ReasonPopularity    RecommendationReason = "popularity"
	ReasonFallback      RecommendationReason = "fallback"
)

// Recommendation is one fused, weighted entry in a recommendation list.
// Score is the sum of signal_score x signal_weight over every signal
// that proposed the product; Reasons lists the contributing signals in
// the order they were accumulated.
type Recommendation struct {
	ProductID uint64                 `json:"product_id"`
	Product   *Product               `json:"product,omitempty"`
	Score     float64                `json:"score"`
	Reasons   []RecommendationReason `json:"reasons"`
	Metadata  map[string]any         `json:"metadata,omitempty"`
}

// Algorithm tags persisted with a cached recommendation set.
const (
	AlgorithmHybrid  = "hybrid"
	AlgorithmGeneric = "generic"
)

// CachedRecommendationSet is the fusion result persisted by the cache
// layer, keyed by (product, user-or-anonymous). ForUser is nil for the
// anonymous cache, which is distinct from any specific user's cache.
type CachedRecommendationSet struct {
	ForProduct  uint64           `json:"for_product"`
	ForUser     *uint            `json:"for_user"`
	Items       []Recommendation `json:"items"`
	Algorithm   string           `json:"algorithm"`
	LastUpdated time.Time        `json:"last_updated"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Live reports whether the entry is still valid at now. Expiry is
// strict: an entry expiring exactly at now is already dead.
func (s CachedRecommendationSet) Live(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
