package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myntraMarket/domain"

	"gorm.io/gorm"
)

type ViewEventRepository struct {
	DB *gorm.DB
}

func NewViewEventRepository(db *gorm.DB) *ViewEventRepository {
	return &ViewEventRepository{
		DB: db,
	}
}

// FindActive returns the live event for (user-or-null, product,
// session) viewed since the given cutoff, or nil when none exists.
// A literal NULL user never matches a specific user's row.
func (r *ViewEventRepository) FindActive(
	ctx context.Context,
	userID *uint,
	productID uint64,
	sessionID string,
	since time.Time,
) (*domain.ViewEvent, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Where("session_id = ?", sessionID).
		Where("viewed_at >= ?", since)

	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	} else {
		q = q.Where("user_id IS NULL")
	}

	var event domain.ViewEvent
	err := q.Order("viewed_at DESC").First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query view_events: %w", err)
	}

	return &event, nil
}

func (r *ViewEventRepository) Create(ctx context.Context, event *domain.ViewEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create view event: %w", err)
	}

	return nil
}

func (r *ViewEventRepository) Update(ctx context.Context, event *domain.ViewEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("failed to update view event: %w", err)
	}

	return nil
}

// RecentViewers aggregates the authenticated viewers of a product,
// most views first, most recent view breaking ties. Anonymous views
// cannot be correlated across sessions and are excluded.
func (r *ViewEventRepository) RecentViewers(ctx context.Context, productID uint64, limit int) ([]domain.ViewerStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var stats []domain.ViewerStat
	err := r.DB.WithContext(ctx).
		Model(&domain.ViewEvent{}).
		Select("user_id AS user_id, COUNT(*) AS view_count, MAX(viewed_at) AS last_viewed").
		Where("product_id = ?", productID).
		Where("user_id IS NOT NULL").
		Group("user_id").
		Order("view_count DESC").
		Order("last_viewed DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recent viewers: %w", err)
	}

	return stats, nil
}

// ProductsViewedBy aggregates per-product view stats over a viewer
// cohort, excluding the target product and, when known, the requesting
// user's own views.
func (r *ViewEventRepository) ProductsViewedBy(
	ctx context.Context,
	userIDs []uint,
	excludeProductID uint64,
	excludeUserID *uint,
) ([]domain.ProductViewStat, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(userIDs) == 0 {
		return []domain.ProductViewStat{}, nil
	}

	q := r.DB.WithContext(ctx).
		Model(&domain.ViewEvent{}).
		Select(`product_id AS product_id,
			COUNT(DISTINCT user_id) AS unique_viewers,
			COUNT(*) AS total_views,
			COALESCE(AVG(time_spent), 0) AS avg_time_spent,
			COUNT(*) FILTER (WHERE added_to_wishlist) AS wishlist_adds,
			COUNT(*) FILTER (WHERE added_to_bag) AS bag_adds`).
		Where("user_id IN ?", userIDs).
		Where("product_id <> ?", excludeProductID)

	if excludeUserID != nil {
		q = q.Where("user_id <> ?", *excludeUserID)
	}

	var stats []domain.ProductViewStat
	if err := q.Group("product_id").Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate cohort views: %w", err)
	}

	return stats, nil
}

// SubjectHistory returns a user's view events since the cutoff,
// newest first, with the viewed product preloaded.
func (r *ViewEventRepository) SubjectHistory(
	ctx context.Context,
	userID uint,
	since time.Time,
	excludeProductID uint64,
	limit int,
) ([]domain.ViewEvent, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	q := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Where("viewed_at >= ?", since)

	if excludeProductID != 0 {
		q = q.Where("product_id <> ?", excludeProductID)
	}

	var events []domain.ViewEvent
	if err := q.Order("viewed_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to query subject history: %w", err)
	}

	return events, nil
}

func (r *ViewEventRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]domain.ViewEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var events []domain.ViewEvent
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list view events: %w", err)
	}

	return events, nil
}

func (r *ViewEventRepository) DeleteForUser(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.ViewEvent{}).Error; err != nil {
		return fmt.Errorf("failed to delete view events: %w", err)
	}

	return nil
}
