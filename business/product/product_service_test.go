//go:build !integration

package product

import (
	"context"
	"errors"
	"testing"

	"myntraMarket/domain"
)

type fakeProductRepo struct {
	products map[uint64]domain.Product

	createCalls int
	updateCalls int
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	f.createCalls++
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	f.updateCalls++
	if _, ok := f.products[product.ID]; !ok {
		return errors.New("product not found")
	}
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.products[id]; !ok {
		return errors.New("product not found")
	}
	delete(f.products, id)
	return nil
}

func TestCreateProduct_Validation(t *testing.T) {
	repo := &fakeProductRepo{products: map[uint64]domain.Product{}}
	svc := NewProductService(repo)

	cases := []struct {
		name    string
		product domain.Product
		wantErr string
	}{
		{"missing name", domain.Product{Category: "Shoes", Price: 100}, "product name is required"},
		{"missing category", domain.Product{Name: "Air Zoom", Price: 100}, "category is required"},
		{"zero price", domain.Product{Name: "Air Zoom", Category: "Shoes"}, "price must be greater than 0"},
		{"bad rating", domain.Product{Name: "Air Zoom", Category: "Shoes", Price: 100, Rating: 6}, "rating must be between 0 and 5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.product
			_, err := svc.CreateProduct(context.Background(), &p)
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("want %q, got %v", tc.wantErr, err)
			}
		})
	}

	if repo.createCalls != 0 {
		t.Fatalf("invalid products must not reach the repository, got %d creates", repo.createCalls)
	}
}

func TestGetProductByID_NotFound(t *testing.T) {
	repo := &fakeProductRepo{products: map[uint64]domain.Product{}}
	svc := NewProductService(repo)

	_, err := svc.GetProductByID(context.Background(), 99)
	if err == nil || err.Error() != "product not found" {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := &fakeProductRepo{products: map[uint64]domain.Product{
		5: {ID: 5, Name: "Air Zoom", Category: "Shoes", Price: 2000},
	}}
	svc := NewProductService(repo)

	if err := svc.DeleteProduct(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), 5); err == nil {
		t.Fatal("expected error deleting a missing product")
	}
}
