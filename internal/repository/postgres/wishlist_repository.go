package postgres

import (
	"context"
	"errors"
	"fmt"

	"myntraMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{
		DB: db,
	}
}

func (r *WishlistRepository) ListFor(ctx context.Context, userID uint, limit int) ([]domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 100
	}

	var items []domain.WishlistItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	return items, nil
}

// Add is idempotent: re-adding an already wishlisted product is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("wishlist item not found")
	}

	return nil
}
