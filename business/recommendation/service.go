package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
)

// ErrProductNotFound is the one error Recommend surfaces to callers.
// Everything else degrades into a fallback list or an empty result.
var ErrProductNotFound = errors.New("product not found")

// ---- Repository interfaces ----

// CatalogRepository is the read-only product lookup the signals run on.
type CatalogRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
	FindMany(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error)
	FindByCategoryOrBrand(ctx context.Context, categories, brands []string, excludeID uint64, limit int) ([]domain.Product, error)
	FindTopRatedInCategory(ctx context.Context, category string, excludeID uint64, limit int) ([]domain.Product, error)
	FindPopular(ctx context.Context, excludeID uint64, limit int) ([]domain.Product, error)
}

// BehaviorLogRepository reads the view-event log. Only the tracking
// service writes to it.
type BehaviorLogRepository interface {
	RecentViewers(ctx context.Context, productID uint64, limit int) ([]domain.ViewerStat, error)
	ProductsViewedBy(ctx context.Context, userIDs []uint, excludeProductID uint64, excludeUserID *uint) ([]domain.ProductViewStat, error)
	SubjectHistory(ctx context.Context, userID uint, since time.Time, excludeProductID uint64, limit int) ([]domain.ViewEvent, error)
}

// AffinityRepository reads a user's saved products.
type AffinityRepository interface {
	ListFor(ctx context.Context, userID uint, limit int) ([]domain.WishlistItem, error)
}

// Cache persists fused recommendation sets keyed by (product,
// user-or-anonymous). Get returns nil on a miss or an expired entry.
type Cache interface {
	Get(ctx context.Context, productID uint64, userID *uint) (*domain.CachedRecommendationSet, error)
	Put(ctx context.Context, set domain.CachedRecommendationSet, ttl time.Duration) error
}

// ---- Usecase / Service ----

type Service struct {
	catalogRepo  CatalogRepository
	behaviorRepo BehaviorLogRepository
	affinityRepo AffinityRepository
	cache        Cache
	cfg          Config
}

func NewService(
	catalogRepo CatalogRepository,
	behaviorRepo BehaviorLogRepository,
	affinityRepo AffinityRepository,
	cache Cache,
	cfg Config,
) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		behaviorRepo: behaviorRepo,
		affinityRepo: affinityRepo,
		cache:        cache,
		cfg:          cfg,
	}
}

// Recommend returns up to limit products related to productID,
// personalized when userID is non-nil. The request only hard-fails
// when the target product does not exist; any other trouble degrades
// through the same-category fallback down to an empty list.
func (s *Service) Recommend(
	ctx context.Context,
	productID uint64,
	userID *uint,
	limit int,
) ([]domain.Recommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	// 1) cache check. A failed read is a miss; a hit smaller than the
	// requested limit is recomputed.
	if cached, err := s.cache.Get(ctx, productID, userID); err != nil {
		logger.Warn("recommendation cache read failed", "product_id", productID, "error", err)
	} else if cached != nil && len(cached.Items) >= limit {
		RecommendationResultsTotal.WithLabelValues("cache_hit").Inc()
		return cached.Items[:limit], nil
	}

	// 2) load the target. Not found is the only caller-visible error.
	target, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || err.Error() == "product not found" {
			RecommendationResultsTotal.WithLabelValues("not_found").Inc()
			return nil, ErrProductNotFound
		}
		logger.Error("failed to load target product", "product_id", productID, "error", err)
		return s.errorFallback(ctx, productID, limit), nil
	}

	// 3) dispatch signals and fuse.
	var (
		recs      []domain.Recommendation
		algorithm string
	)

	if userID != nil {
		recs = s.personalizedRecommendations(ctx, target, *userID, limit)
		algorithm = domain.AlgorithmHybrid
	} else {
		recs = s.genericRecommendations(ctx, target, limit)
		algorithm = domain.AlgorithmGeneric
	}

	if recs == nil {
		// every signal failed; degrade to same-category top-rated
		return s.errorFallback(ctx, productID, limit), nil
	}

	RecommendationResultsTotal.WithLabelValues(algorithm).Inc()

	// 4) cache write, best effort.
	now := time.Now()
	set := domain.CachedRecommendationSet{
		ForProduct:  productID,
		ForUser:     userID,
		Items:       recs,
		Algorithm:   algorithm,
		LastUpdated: now,
		ExpiresAt:   now.Add(s.cfg.CacheTTL),
	}
	if err := s.cache.Put(ctx, set, s.cfg.CacheTTL); err != nil {
		CacheWriteFailuresTotal.Inc()
		logger.Warn("recommendation cache write failed", "product_id", productID, "error", err)
	}

	return recs, nil
}

// personalizedRecommendations fans out the four signals concurrently,
// treats each failure as an empty contribution, and fuses the rest.
// Returns nil only when every signal failed.
func (s *Service) personalizedRecommendations(
	ctx context.Context,
	target domain.Product,
	userID uint,
	limit int,
) []domain.Recommendation {

	type signalFn struct {
		name   string
		weight float64
		run    func(context.Context) ([]Candidate, error)
	}

	signals := []signalFn{
		{"collaborative", s.cfg.WeightCollaborative, func(c context.Context) ([]Candidate, error) {
			return s.collaborativeSignal(c, target, &userID)
		}},
		{"content", s.cfg.WeightContent, func(c context.Context) ([]Candidate, error) {
			return s.contentSignal(c, target)
		}},
		{"history", s.cfg.WeightHistory, func(c context.Context) ([]Candidate, error) {
			return s.historySignal(c, target, userID)
		}},
		{"wishlist", s.cfg.WeightWishlist, func(c context.Context) ([]Candidate, error) {
			return s.wishlistSignal(c, target, userID)
		}},
	}

	outputs := make([]signalOutput, len(signals))
	failures := make([]bool, len(signals))

	var wg sync.WaitGroup
	for i, sig := range signals {
		wg.Add(1)
		go func(i int, sig signalFn) {
			defer wg.Done()

			sctx, cancel := context.WithTimeout(ctx, s.cfg.SignalTimeout)
			defer cancel()

			cands, err := sig.run(sctx)
			if err != nil {
				SignalFailuresTotal.WithLabelValues(sig.name).Inc()
				logger.Warn("signal generator failed",
					"signal", sig.name,
					"product_id", target.ID,
					"error", err,
				)
				failures[i] = true
				return
			}
			outputs[i] = signalOutput{candidates: cands, weight: sig.weight}
		}(i, sig)
	}
	wg.Wait()

	allFailed := true
	for _, failed := range failures {
		if !failed {
			allFailed = false
			break
		}
	}
	if allFailed {
		return nil
	}

	return fuse(outputs, limit)
}

// genericRecommendations serves subjects with no identity: content
// similarity blended with a popularity ranking.
func (s *Service) genericRecommendations(
	ctx context.Context,
	target domain.Product,
	limit int,
) []domain.Recommendation {

	outputs := make([]signalOutput, 0, 2)
	failed := 0

	contentCands, err := s.contentSignal(ctx, target)
	if err != nil {
		SignalFailuresTotal.WithLabelValues("content").Inc()
		logger.Warn("signal generator failed", "signal", "content", "product_id", target.ID, "error", err)
		failed++
	} else {
		outputs = append(outputs, signalOutput{candidates: contentCands, weight: s.cfg.GenericWeightContent})
	}

	popCands, err := s.popularitySignal(ctx, target, limit)
	if err != nil {
		SignalFailuresTotal.WithLabelValues("popularity").Inc()
		logger.Warn("signal generator failed", "signal", "popularity", "product_id", target.ID, "error", err)
		failed++
	} else {
		outputs = append(outputs, signalOutput{candidates: popCands, weight: s.cfg.GenericWeightPopularity})
	}

	if failed == 2 {
		return nil
	}

	return fuse(outputs, limit)
}

// errorFallback serves same-category top-rated products when the
// normal pipeline broke. If even that fails, the result is empty;
// nothing past this point ever errors out of the facade.
func (s *Service) errorFallback(ctx context.Context, productID uint64, limit int) []domain.Recommendation {
	RecommendationResultsTotal.WithLabelValues("fallback").Inc()

	target, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Error("fallback target lookup failed", "product_id", productID, "error", err)
		return []domain.Recommendation{}
	}

	products, err := s.catalogRepo.FindTopRatedInCategory(ctx, target.Category, target.ID, limit)
	if err != nil {
		logger.Error("fallback query failed", "product_id", productID, "error", err)
		return []domain.Recommendation{}
	}

	recs := make([]domain.Recommendation, 0, len(products))
	for _, p := range products {
		product := p
		recs = append(recs, domain.Recommendation{
			ProductID: p.ID,
			Product:   &product,
			Score:     s.cfg.FallbackScore,
			Reasons:   []domain.RecommendationReason{domain.ReasonFallback},
		})
	}

	return recs
}
