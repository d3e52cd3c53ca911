//go:build !integration

package recommendation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"myntraMarket/domain"
)

// ---- fakes ----

type fakeCatalog struct {
	mu sync.Mutex

	products map[uint64]domain.Product

	findByIDErr       error
	findManyErr       error
	byCategoryErr     error
	topRatedErr       error
	popularErr        error
	findManyResults   []domain.Product
	byCategoryResults []domain.Product
	topRatedResults   []domain.Product
	popularResults    []domain.Product

	findByIDCalls int
	findManyCalls int
	topRatedCalls int
	popularCalls  int

	lastFindManyFilter domain.ProductFilter
	lastFindManyLimit  int
}

func (f *fakeCatalog) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCalls++
	if f.findByIDErr != nil {
		return domain.Product{}, f.findByIDErr
	}
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindMany(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findManyCalls++
	f.lastFindManyFilter = filter
	f.lastFindManyLimit = limit
	if f.findManyErr != nil {
		return nil, f.findManyErr
	}
	return f.findManyResults, nil
}

func (f *fakeCatalog) FindByCategoryOrBrand(ctx context.Context, categories, brands []string, excludeID uint64, limit int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byCategoryErr != nil {
		return nil, f.byCategoryErr
	}
	return f.byCategoryResults, nil
}

func (f *fakeCatalog) FindTopRatedInCategory(ctx context.Context, category string, excludeID uint64, limit int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topRatedCalls++
	if f.topRatedErr != nil {
		return nil, f.topRatedErr
	}
	return f.topRatedResults, nil
}

func (f *fakeCatalog) FindPopular(ctx context.Context, excludeID uint64, limit int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.popularCalls++
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	return f.popularResults, nil
}

type fakeBehaviorLog struct {
	mu sync.Mutex

	viewers     []domain.ViewerStat
	viewerStats []domain.ProductViewStat
	history     []domain.ViewEvent

	viewersErr error
	historyErr error

	recentViewersCalls  int
	subjectHistoryCalls int
}

func (f *fakeBehaviorLog) RecentViewers(ctx context.Context, productID uint64, limit int) ([]domain.ViewerStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentViewersCalls++
	if f.viewersErr != nil {
		return nil, f.viewersErr
	}
	return f.viewers, nil
}

func (f *fakeBehaviorLog) ProductsViewedBy(ctx context.Context, userIDs []uint, excludeProductID uint64, excludeUserID *uint) ([]domain.ProductViewStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewerStats, nil
}

func (f *fakeBehaviorLog) SubjectHistory(ctx context.Context, userID uint, since time.Time, excludeProductID uint64, limit int) ([]domain.ViewEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjectHistoryCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

type fakeAffinity struct {
	mu sync.Mutex

	items   []domain.WishlistItem
	err     error
	listFor int
}

func (f *fakeAffinity) ListFor(ctx context.Context, userID uint, limit int) ([]domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFor++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeCache struct {
	mu sync.Mutex

	entry  *domain.CachedRecommendationSet
	getErr error
	putErr error

	getCalls int
	putCalls int
	lastPut  *domain.CachedRecommendationSet
}

func (f *fakeCache) Get(ctx context.Context, productID uint64, userID *uint) (*domain.CachedRecommendationSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entry, nil
}

func (f *fakeCache) Put(ctx context.Context, set domain.CachedRecommendationSet, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	f.lastPut = &set
	return f.putErr
}

// ---- helpers ----

func testService(catalog *fakeCatalog, behavior *fakeBehaviorLog, affinity *fakeAffinity, cache *fakeCache) *Service {
	cfg := DefaultConfig()
	cfg.SignalTimeout = time.Second
	return NewService(catalog, behavior, affinity, cache, cfg)
}

func catalogWith(products ...domain.Product) *fakeCatalog {
	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &fakeCatalog{products: byID}
}

func makeRecs(n int) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, n)
	for i := 1; i <= n; i++ {
		recs = append(recs, domain.Recommendation{
			ProductID: uint64(i),
			Score:     1 - float64(i)/100,
			Reasons:   []domain.RecommendationReason{domain.ReasonContent},
		})
	}
	return recs
}

// ---- tests ----

func TestRecommend_CacheHitSkipsSignals(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes"})
	behavior := &fakeBehaviorLog{}
	affinity := &fakeAffinity{}
	cache := &fakeCache{
		entry: &domain.CachedRecommendationSet{
			ForProduct: 1,
			Items:      makeRecs(10),
			Algorithm:  domain.AlgorithmGeneric,
			ExpiresAt:  time.Now().Add(time.Hour),
		},
	}

	svc := testService(catalog, behavior, affinity, cache)

	recs, err := svc.Recommend(context.Background(), 1, nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("expected cached items truncated to 5, got %d", len(recs))
	}

	if catalog.findByIDCalls != 0 {
		t.Fatalf("cache hit must not touch the catalog, got %d lookups", catalog.findByIDCalls)
	}
	if behavior.recentViewersCalls != 0 || behavior.subjectHistoryCalls != 0 || affinity.listFor != 0 {
		t.Fatal("cache hit must not dispatch signal generators")
	}
	if cache.putCalls != 0 {
		t.Fatal("cache hit must not rewrite the cache")
	}
}

func TestRecommend_ShortCacheEntryRecomputed(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	catalog.findManyResults = []domain.Product{
		{ID: 2, Category: "Shoes", Price: 1900},
		{ID: 3, Category: "Shoes", Price: 2100},
	}
	cache := &fakeCache{
		entry: &domain.CachedRecommendationSet{
			ForProduct: 1,
			Items:      makeRecs(3),
			ExpiresAt:  time.Now().Add(time.Hour),
		},
	}

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, cache)

	recs, err := svc.Recommend(context.Background(), 1, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.findByIDCalls == 0 {
		t.Fatal("expected recomputation when cached set is smaller than the limit")
	}
	if len(recs) == 0 {
		t.Fatal("expected recomputed recommendations")
	}
}

func TestRecommend_TargetNotFound(t *testing.T) {
	catalog := catalogWith()
	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, &fakeCache{})

	_, err := svc.Recommend(context.Background(), 99, nil, 10)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestRecommend_AnonymousSkipsPersonalSignals(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	catalog.findManyResults = []domain.Product{{ID: 2, Category: "Shoes", Price: 1800}}
	catalog.popularResults = []domain.Product{{ID: 3, Category: "Tees", Rating: 4.8}}
	behavior := &fakeBehaviorLog{}
	affinity := &fakeAffinity{}

	svc := testService(catalog, behavior, affinity, &fakeCache{})

	recs, err := svc.Recommend(context.Background(), 1, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected generic recommendations")
	}

	if behavior.recentViewersCalls != 0 {
		t.Fatal("anonymous request must not run the collaborative signal")
	}
	if behavior.subjectHistoryCalls != 0 {
		t.Fatal("anonymous request must not read browsing history")
	}
	if affinity.listFor != 0 {
		t.Fatal("anonymous request must not read the wishlist")
	}
}

func TestRecommend_AllSignalsFailedFallsBack(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	catalog.findManyErr = errors.New("db down")
	catalog.topRatedResults = []domain.Product{
		{ID: 5, Category: "Shoes", Rating: 4.9},
		{ID: 6, Category: "Shoes", Rating: 4.7},
	}
	behavior := &fakeBehaviorLog{
		viewersErr: errors.New("db down"),
		historyErr: errors.New("db down"),
	}
	affinity := &fakeAffinity{err: errors.New("db down")}

	svc := testService(catalog, behavior, affinity, &fakeCache{})

	userID := uint(42)
	recs, err := svc.Recommend(context.Background(), 1, &userID, 10)
	if err != nil {
		t.Fatalf("degraded path must not error, got %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected two fallback recs, got %d", len(recs))
	}
	for _, rec := range recs {
		if !almostEqual(rec.Score, DefaultConfig().FallbackScore) {
			t.Fatalf("fallback rec carries score %v, want %v", rec.Score, DefaultConfig().FallbackScore)
		}
		if len(rec.Reasons) != 1 || rec.Reasons[0] != domain.ReasonFallback {
			t.Fatalf("fallback rec carries reasons %v", rec.Reasons)
		}
	}
}

func TestRecommend_EmptySignalsAreNotFailure(t *testing.T) {
	// every signal succeeds with nothing: the result is an empty list,
	// not the fallback
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	behavior := &fakeBehaviorLog{}
	affinity := &fakeAffinity{}

	svc := testService(catalog, behavior, affinity, &fakeCache{})

	userID := uint(42)
	recs, err := svc.Recommend(context.Background(), 1, &userID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty result, got %d recs", len(recs))
	}
	if catalog.topRatedCalls != 0 {
		t.Fatal("empty signals must not trigger the fallback query")
	}
}

func TestRecommend_CacheWriteFailureIsBestEffort(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	catalog.findManyResults = []domain.Product{{ID: 2, Category: "Shoes", Price: 1800}}
	cache := &fakeCache{putErr: errors.New("redis down")}

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, cache)

	recs, err := svc.Recommend(context.Background(), 1, nil, 10)
	if err != nil {
		t.Fatalf("cache write failure must not surface, got %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations despite failed cache write")
	}
	if cache.putCalls != 1 {
		t.Fatalf("expected one cache write attempt, got %d", cache.putCalls)
	}
}

func TestRecommend_CacheReadFailureIsMiss(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	catalog.findManyResults = []domain.Product{{ID: 2, Category: "Shoes", Price: 1800}}
	cache := &fakeCache{getErr: errors.New("redis down")}

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, cache)

	recs, err := svc.Recommend(context.Background(), 1, nil, 10)
	if err != nil {
		t.Fatalf("cache read failure must not surface, got %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recomputed recommendations on failed cache read")
	}
}

func TestRecommend_CachesComputedSet(t *testing.T) {
	catalog := catalogWith(domain.Product{ID: 1, Category: "Shoes", Price: 2000})
	catalog.findManyResults = []domain.Product{{ID: 2, Category: "Shoes", Price: 1800}}
	cache := &fakeCache{}

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, cache)

	if _, err := svc.Recommend(context.Background(), 1, nil, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.putCalls != 1 {
		t.Fatalf("expected one cache write, got %d", cache.putCalls)
	}
	if cache.lastPut.ForProduct != 1 || cache.lastPut.ForUser != nil {
		t.Fatalf("cache entry keyed wrong: %+v", cache.lastPut)
	}
	if cache.lastPut.Algorithm != domain.AlgorithmGeneric {
		t.Fatalf("expected generic algorithm tag, got %q", cache.lastPut.Algorithm)
	}
	if !cache.lastPut.ExpiresAt.After(cache.lastPut.LastUpdated) {
		t.Fatal("cache entry must expire after its write time")
	}
}
