package postgres

import (
	"context"
	"errors"
	"fmt"

	"myntraMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BagRepository struct {
	DB *gorm.DB
}

func NewBagRepository(db *gorm.DB) *BagRepository {
	return &BagRepository{
		DB: db,
	}
}

func (r *BagRepository) ListFor(ctx context.Context, userID uint) ([]domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.BagItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query bag: %w", err)
	}

	return items, nil
}

func (r *BagRepository) FindItem(ctx context.Context, userID uint, productID uint64) (*domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var item domain.BagItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bag item: %w", err)
	}

	return &item, nil
}

func (r *BagRepository) Upsert(ctx context.Context, item *domain.BagItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "size", "updated_at"}),
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert bag item: %w", err)
	}

	return nil
}

func (r *BagRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.BagItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove bag item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("bag item not found")
	}

	return nil
}
