//go:build !integration

package recommendation

import (
	"context"
	"testing"
	"time"

	"myntraMarket/domain"
)

func TestContentSignal_PriceWindowAroundTarget(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes", Price: 2000}
	catalog := catalogWith(target)

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, &fakeCache{})

	if _, err := svc.contentSignal(context.Background(), target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filter := catalog.lastFindManyFilter
	if filter.Category != "Shoes" {
		t.Fatalf("expected category filter, got %q", filter.Category)
	}
	if !almostEqual(filter.PriceMin, 1400) || !almostEqual(filter.PriceMax, 2600) {
		t.Fatalf("expected price window [1400, 2600], got [%v, %v]", filter.PriceMin, filter.PriceMax)
	}
	if filter.ExcludeID != 1 {
		t.Fatalf("target must be excluded, got ExcludeID %d", filter.ExcludeID)
	}
	if !filter.ActiveOnly {
		t.Fatal("content signal must only consider active products")
	}
}

func TestContentSignal_UnpricedTargetSkipsWindow(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes"}
	catalog := catalogWith(target)

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, &fakeCache{})

	if _, err := svc.contentSignal(context.Background(), target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filter := catalog.lastFindManyFilter
	if filter.PriceMin != 0 || filter.PriceMax != 0 {
		t.Fatalf("expected no price window for unpriced target, got [%v, %v]", filter.PriceMin, filter.PriceMax)
	}
}

func TestContentSignal_RanksBySimilarity(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes", Brand: "Nike", Price: 2000}
	catalog := catalogWith(target)
	catalog.findManyResults = []domain.Product{
		{ID: 2, Category: "Shoes", Brand: "Puma", Price: 1500},
		{ID: 3, Category: "Shoes", Brand: "Nike", Price: 2000},
		{ID: 4, Category: "Shoes", Brand: "Adidas", Price: 2600},
	}

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, &fakeCache{})

	cands, err := svc.contentSignal(context.Background(), target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 3 {
		t.Fatalf("expected three candidates, got %d", len(cands))
	}
	if cands[0].Product.ID != 3 {
		t.Fatalf("expected the exact match ranked first, got %d", cands[0].Product.ID)
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Score > cands[i-1].Score {
			t.Fatal("candidates not ordered by descending similarity")
		}
	}
	for _, c := range cands {
		if c.Score <= DefaultConfig().MinSimilarity {
			t.Fatalf("candidate below similarity floor survived: %v", c.Score)
		}
	}
}

func TestWishlistSignal_EmptyWishlistSkipsCatalog(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes", Price: 2000}
	catalog := catalogWith(target)
	affinity := &fakeAffinity{}

	svc := testService(catalog, &fakeBehaviorLog{}, affinity, &fakeCache{})

	cands, err := svc.wishlistSignal(context.Background(), target, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected no candidates for empty wishlist, got %d", len(cands))
	}
	if catalog.findManyCalls != 0 {
		t.Fatal("empty wishlist must not query the catalog")
	}
}

func TestWishlistSignal_ProfileFromSavedItems(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes", Price: 2000}
	catalog := catalogWith(target)
	catalog.findManyResults = []domain.Product{
		{ID: 7, Category: "Kurtas", Price: 950},
		{ID: 8, Category: "Sarees", Price: 1050},
	}
	affinity := &fakeAffinity{
		items: []domain.WishlistItem{
			{ProductID: 10, Product: &domain.Product{ID: 10, Category: "Kurtas", Price: 800}},
			{ProductID: 11, Product: &domain.Product{ID: 11, Category: "Sarees", Price: 1200}},
		},
	}

	svc := testService(catalog, &fakeBehaviorLog{}, affinity, &fakeCache{})

	cands, err := svc.wishlistSignal(context.Background(), target, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected two candidates, got %d", len(cands))
	}

	// mean wishlist price 1000, window +-40%
	filter := catalog.lastFindManyFilter
	if !almostEqual(filter.PriceMin, 600) || !almostEqual(filter.PriceMax, 1400) {
		t.Fatalf("expected price window [600, 1400], got [%v, %v]", filter.PriceMin, filter.PriceMax)
	}
	if len(filter.Categories) != 2 {
		t.Fatalf("expected both wishlist categories in the filter, got %v", filter.Categories)
	}

	for _, c := range cands {
		if !almostEqual(c.Score, DefaultConfig().WishlistScore) {
			t.Fatalf("wishlist candidates carry a fixed score, got %v", c.Score)
		}
		if c.Reason != domain.ReasonWishlist {
			t.Fatalf("wrong reason %q", c.Reason)
		}
	}
}

func TestHistorySignal_ScoresByInterestRank(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Watches", Price: 5000}
	catalog := catalogWith(target)
	catalog.byCategoryResults = []domain.Product{
		{ID: 2, Category: "Shoes", Brand: "Nike"},
		{ID: 3, Category: "Tees", Brand: "Zara"},
		{ID: 4, Category: "Socks", Brand: "Unknown"},
	}

	behavior := &fakeBehaviorLog{
		history: []domain.ViewEvent{
			{ProductID: 20, Product: &domain.Product{Category: "Shoes", Brand: "Nike"}},
			{ProductID: 21, Product: &domain.Product{Category: "Shoes", Brand: "Nike"}},
			{ProductID: 22, Product: &domain.Product{Category: "Tees", Brand: "HM"}},
		},
	}

	svc := testService(catalog, behavior, &fakeAffinity{}, &fakeCache{})

	cands, err := svc.historySignal(context.Background(), target, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// product 4 matches neither top categories nor top brands and is
	// dropped; 2 (rank-0 category + rank-0 brand) outranks 3
	if len(cands) != 2 {
		t.Fatalf("expected two candidates, got %d", len(cands))
	}

	byID := map[uint64]Candidate{}
	for _, c := range cands {
		byID[c.Product.ID] = c
	}
	if _, ok := byID[4]; ok {
		t.Fatal("unmatched product must not score")
	}
	if byID[2].Score <= byID[3].Score {
		t.Fatalf("expected dominant interest scored higher: %v vs %v", byID[2].Score, byID[3].Score)
	}
	if byID[2].Score > 1 {
		t.Fatalf("history score exceeded 1: %v", byID[2].Score)
	}
}

func TestHistorySignal_NoHistoryIsEmptySuccess(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Watches"}
	catalog := catalogWith(target)

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, &fakeCache{})

	cands, err := svc.historySignal(context.Background(), target, 42)
	if err != nil {
		t.Fatalf("no history must not be an error, got %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}

func TestCollaborativeSignal_OrdersByCoViewers(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes"}
	catalog := catalogWith(
		target,
		domain.Product{ID: 2, Name: "A"},
		domain.Product{ID: 3, Name: "B"},
	)

	behavior := &fakeBehaviorLog{
		viewers: []domain.ViewerStat{
			{UserID: 10, ViewCount: 5},
			{UserID: 11, ViewCount: 2},
		},
		viewerStats: []domain.ProductViewStat{
			{ProductID: 2, UniqueViewers: 1, TotalViews: 3},
			{ProductID: 3, UniqueViewers: 2, TotalViews: 2},
		},
	}

	svc := testService(catalog, behavior, &fakeAffinity{}, &fakeCache{})

	userID := uint(42)
	cands, err := svc.collaborativeSignal(context.Background(), target, &userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected two candidates, got %d", len(cands))
	}
	if cands[0].Product.ID != 3 {
		t.Fatalf("expected the product with more unique viewers first, got %d", cands[0].Product.ID)
	}
	if cands[0].Metadata["viewer_count"] != 2 {
		t.Fatalf("expected viewer_count metadata, got %v", cands[0].Metadata["viewer_count"])
	}
	for _, c := range cands {
		if c.Score > 1 {
			t.Fatalf("collaborative score exceeded 1: %v", c.Score)
		}
	}
}

func TestCollaborativeSignal_NoViewersIsEmptySuccess(t *testing.T) {
	target := domain.Product{ID: 1, Category: "Shoes"}
	catalog := catalogWith(target)

	svc := testService(catalog, &fakeBehaviorLog{}, &fakeAffinity{}, &fakeCache{})

	cands, err := svc.collaborativeSignal(context.Background(), target, nil)
	if err != nil {
		t.Fatalf("cold start must not be an error, got %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}

func TestCachedSet_LiveIsStrict(t *testing.T) {
	now := time.Now()
	set := domain.CachedRecommendationSet{ExpiresAt: now}

	if set.Live(now) {
		t.Fatal("an entry expiring exactly now must be dead")
	}
	set.ExpiresAt = now.Add(time.Millisecond)
	if !set.Live(now) {
		t.Fatal("an entry expiring after now must be live")
	}
}
