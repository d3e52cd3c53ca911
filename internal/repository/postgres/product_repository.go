package postgres

import (
	"context"
	"errors"
	"fmt"
	"myntraMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error) {
	return r.FindMany(ctx, filter, limit)
}

// FindMany applies the filter's populated fields as conjunctive
// constraints. A zero limit means no cap.
func (r *ProductRepository) FindMany(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&domain.Product{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if len(filter.Categories) > 0 {
		q = q.Where("category IN ?", filter.Categories)
	}
	if len(filter.Brands) > 0 {
		q = q.Where("brand IN ?", filter.Brands)
	}
	if filter.PriceMin > 0 {
		q = q.Where("price >= ?", filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		q = q.Where("price <= ?", filter.PriceMax)
	}
	if filter.ExcludeID != 0 {
		q = q.Where("id <> ?", filter.ExcludeID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = TRUE")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindByCategoryOrBrand matches any of the given categories OR brands,
// for interest-profile queries where either attribute qualifies.
func (r *ProductRepository) FindByCategoryOrBrand(ctx context.Context, categories, brands []string, excludeID uint64, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(categories) == 0 && len(brands) == 0 {
		return []domain.Product{}, nil
	}

	q := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("is_active = TRUE")

	switch {
	case len(categories) > 0 && len(brands) > 0:
		q = q.Where("category IN ? OR brand IN ?", categories, brands)
	case len(categories) > 0:
		q = q.Where("category IN ?", categories)
	default:
		q = q.Where("brand IN ?", brands)
	}

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by category or brand: %w", err)
	}

	return products, nil
}

// FindTopRatedInCategory orders by rating then rating_count, both
// descending. Backs the error-fallback recommendation path.
func (r *ProductRepository) FindTopRatedInCategory(ctx context.Context, category string, excludeID uint64, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category = ?", category).
		Where("is_active = TRUE").
		Order("rating DESC").
		Order("rating_count DESC")

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find top rated products: %w", err)
	}

	return products, nil
}

// FindPopular ranks active products by the popularity blend used for
// anonymous recommendations.
func (r *ProductRepository) FindPopular(ctx context.Context, excludeID uint64, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("is_active = TRUE").
		Order("rating * 20 + rating_count * 2 + popularity DESC")

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find popular products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existingProduct domain.Product
	if err := r.DB.WithContext(ctx).First(&existingProduct, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	updateData := map[string]interface{}{
		"name":         product.Name,
		"brand":        product.Brand,
		"category":     product.Category,
		"description":  product.Description,
		"price":        product.Price,
		"sale_price":   product.SalePrice,
		"image_url":    product.ImageURL,
		"rating":       product.Rating,
		"rating_count": product.RatingCount,
		"popularity":   product.Popularity,
		"is_active":    product.IsActive,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found or already deleted")
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found or already deleted")
	}

	return nil
}
