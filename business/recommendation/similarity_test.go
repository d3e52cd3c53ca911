//go:build !integration

package recommendation

import (
	"math"
	"testing"

	"myntraMarket/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarity_IdenticalAttributes(t *testing.T) {
	a := domain.Product{Category: "Shoes", Brand: "Nike", Price: 2000}
	b := domain.Product{Category: "Shoes", Brand: "Nike", Price: 2000}

	if got := Similarity(a, b); !almostEqual(got, 1.0) {
		t.Fatalf("expected 1.0 for identical attributes, got %v", got)
	}
}

func TestSimilarity_CategoryOnly(t *testing.T) {
	a := domain.Product{Category: "Shoes", Brand: "Nike"}
	b := domain.Product{Category: "Shoes", Brand: "Adidas"}

	if got := Similarity(a, b); !almostEqual(got, 0.4) {
		t.Fatalf("expected 0.4 for category-only match, got %v", got)
	}
}

func TestSimilarity_PriceProximity(t *testing.T) {
	a := domain.Product{Category: "Shoes", Price: 2000}
	b := domain.Product{Category: "Shoes", Price: 1400}

	// 0.4 category + 0.4 * (1400/2000)
	want := 0.4 + 0.4*0.7
	if got := Similarity(a, b); !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSimilarity_ZeroPriceSkipsPriceFactor(t *testing.T) {
	a := domain.Product{Category: "Shoes", Price: 0}
	b := domain.Product{Category: "Shoes", Price: 1500}

	if got := Similarity(a, b); !almostEqual(got, 0.4) {
		t.Fatalf("expected price factor skipped for unpriced product, got %v", got)
	}
}

func TestSimilarity_Commutative(t *testing.T) {
	pairs := []struct {
		a, b domain.Product
	}{
		{
			domain.Product{Category: "Shoes", Brand: "Nike", Price: 2000},
			domain.Product{Category: "Shoes", Brand: "Puma", Price: 1300},
		},
		{
			domain.Product{Category: "Kurtas", Brand: "FabIndia", Price: 900},
			domain.Product{Category: "Shoes", Brand: "FabIndia", Price: 2700},
		},
		{
			domain.Product{},
			domain.Product{Category: "Shoes", Price: 100},
		},
	}

	for i, pair := range pairs {
		ab := Similarity(pair.a, pair.b)
		ba := Similarity(pair.b, pair.a)
		if !almostEqual(ab, ba) {
			t.Errorf("pair %d: Similarity not commutative: %v vs %v", i, ab, ba)
		}
	}
}

func TestSimilarity_NeverAboveOne(t *testing.T) {
	a := domain.Product{Category: "Shoes", Brand: "Nike", Price: 500}
	b := domain.Product{Category: "Shoes", Brand: "Nike", Price: 500}

	if got := Similarity(a, b); got > 1.0 {
		t.Fatalf("similarity exceeded 1.0: %v", got)
	}
}
