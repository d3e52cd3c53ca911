package recommendation

import "time"

// Config carries the engine tunables. The caps and weights are
// empirical; DefaultConfig matches the values the blend was tuned
// against, and deployments override them through pkg/config.
type Config struct {
	// fusion weights for a known subject
	WeightCollaborative float64
	WeightContent       float64
	WeightHistory       float64
	WeightWishlist      float64

	// fusion weights for an anonymous subject
	GenericWeightContent    float64
	GenericWeightPopularity float64

	// candidate caps per signal
	CohortSize         int
	CollaborativeLimit int
	ContentLimit       int
	HistoryLimit       int
	WishlistLimit      int

	// top-K interest buckets for the history signal
	TopCategories int
	TopBrands     int

	// how many recent view events feed the history tally
	HistoryEventCap int

	// how many wishlist entries feed the taste profile
	WishlistEntryCap int

	// price windows as fractions of the anchor price
	ContentPriceWindow  float64
	WishlistPriceWindow float64

	// score constants
	MinSimilarity   float64
	WishlistScore   float64
	PopularityScore float64
	FallbackScore   float64

	DefaultLimit    int
	HistoryLookback time.Duration
	CacheTTL        time.Duration

	// soft per-signal budget; a slow signal is treated as failed
	SignalTimeout time.Duration
}

const (
	defaultWeightCollaborative = 0.4
	defaultWeightContent       = 0.3
	defaultWeightHistory       = 0.2
	defaultWeightWishlist      = 0.1

	defaultGenericWeightContent    = 0.6
	defaultGenericWeightPopularity = 0.4

	defaultCohortSize         = 50
	defaultCollaborativeLimit = 20
	defaultContentLimit       = 20
	defaultHistoryLimit       = 15
	defaultWishlistLimit      = 10

	defaultTopCategories    = 3
	defaultTopBrands        = 5
	defaultHistoryEventCap  = 50
	defaultWishlistEntryCap = 20

	defaultContentPriceWindow  = 0.30
	defaultWishlistPriceWindow = 0.40

	defaultMinSimilarity   = 0.3
	defaultWishlistScore   = 0.7
	defaultPopularityScore = 0.5
	defaultFallbackScore   = 0.3

	defaultLimit = 10
)

func DefaultConfig() Config {
	return Config{
		WeightCollaborative: defaultWeightCollaborative,
		WeightContent:       defaultWeightContent,
		WeightHistory:       defaultWeightHistory,
		WeightWishlist:      defaultWeightWishlist,

		GenericWeightContent:    defaultGenericWeightContent,
		GenericWeightPopularity: defaultGenericWeightPopularity,

		CohortSize:         defaultCohortSize,
		CollaborativeLimit: defaultCollaborativeLimit,
		ContentLimit:       defaultContentLimit,
		HistoryLimit:       defaultHistoryLimit,
		WishlistLimit:      defaultWishlistLimit,

		TopCategories:    defaultTopCategories,
		TopBrands:        defaultTopBrands,
		HistoryEventCap:  defaultHistoryEventCap,
		WishlistEntryCap: defaultWishlistEntryCap,

		ContentPriceWindow:  defaultContentPriceWindow,
		WishlistPriceWindow: defaultWishlistPriceWindow,

		MinSimilarity:   defaultMinSimilarity,
		WishlistScore:   defaultWishlistScore,
		PopularityScore: defaultPopularityScore,
		FallbackScore:   defaultFallbackScore,

		DefaultLimit:    defaultLimit,
		HistoryLookback: 30 * 24 * time.Hour,
		CacheTTL:        24 * time.Hour,
		SignalTimeout:   3 * time.Second,
	}
}
