package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myntraMarket/domain"
	"myntraMarket/pkg/logger"

	"gorm.io/datatypes"
)

// ViewEventRepository owns view-event persistence. FindActive returns
// nil (no error) when no live event exists for the key.
type ViewEventRepository interface {
	FindActive(ctx context.Context, userID *uint, productID uint64, sessionID string, since time.Time) (*domain.ViewEvent, error)
	Create(ctx context.Context, event *domain.ViewEvent) error
	Update(ctx context.Context, event *domain.ViewEvent) error
	ListForUser(ctx context.Context, userID uint, limit int) ([]domain.ViewEvent, error)
	DeleteForUser(ctx context.Context, userID uint) error
}

// TrackInput is the per-view payload. Zero values mean "not reported";
// merging never lowers an already-recorded measurement.
type TrackInput struct {
	TimeSpent       int
	ScrollDepth     int
	Source          string
	AddedToWishlist bool
	AddedToBag      bool
	Metadata        map[string]any
}

type Service struct {
	eventRepo     ViewEventRepository
	sessionWindow time.Duration
}

func NewService(eventRepo ViewEventRepository, sessionWindow time.Duration) *Service {
	if sessionWindow <= 0 {
		sessionWindow = 30 * time.Minute
	}
	return &Service{
		eventRepo:     eventRepo,
		sessionWindow: sessionWindow,
	}
}

// Track records one product view. A repeat view of the same product in
// the same session within the merge window updates the live event
// (max of measurements, OR of flags) instead of inserting a duplicate.
// Storage errors propagate: there is no fallback for a lost view.
func (s *Service) Track(
	ctx context.Context,
	userID *uint,
	productID uint64,
	sessionID string,
	input TrackInput,
) (domain.ViewEvent, error) {

	if err := ctx.Err(); err != nil {
		return domain.ViewEvent{}, fmt.Errorf("context error: %w", err)
	}
	if productID == 0 {
		return domain.ViewEvent{}, errors.New("product id is required")
	}
	if sessionID == "" {
		return domain.ViewEvent{}, errors.New("session id is required")
	}

	now := time.Now()
	since := now.Add(-s.sessionWindow)

	existing, err := s.eventRepo.FindActive(ctx, userID, productID, sessionID, since)
	if err != nil {
		return domain.ViewEvent{}, fmt.Errorf("failed to look up live view event: %w", err)
	}

	if existing != nil {
		if input.TimeSpent > existing.TimeSpent {
			existing.TimeSpent = input.TimeSpent
		}
		if input.ScrollDepth > existing.ScrollDepth {
			existing.ScrollDepth = input.ScrollDepth
		}
		existing.AddedToWishlist = existing.AddedToWishlist || input.AddedToWishlist
		existing.AddedToBag = existing.AddedToBag || input.AddedToBag
		if input.Source != "" {
			existing.Source = input.Source
		}
		if len(input.Metadata) > 0 {
			if existing.Metadata == nil {
				existing.Metadata = datatypes.JSONMap{}
			}
			for k, v := range input.Metadata {
				existing.Metadata[k] = v
			}
		}
		existing.ViewedAt = now

		if err := s.eventRepo.Update(ctx, existing); err != nil {
			return domain.ViewEvent{}, fmt.Errorf("failed to update view event: %w", err)
		}

		logger.Debug("view event merged",
			"product_id", productID,
			"session_id", sessionID,
			"event_id", existing.ID,
		)

		return *existing, nil
	}

	event := &domain.ViewEvent{
		UserID:          userID,
		ProductID:       productID,
		SessionID:       sessionID,
		ViewedAt:        now,
		TimeSpent:       input.TimeSpent,
		ScrollDepth:     input.ScrollDepth,
		Source:          input.Source,
		AddedToWishlist: input.AddedToWishlist,
		AddedToBag:      input.AddedToBag,
	}
	if event.Source == "" {
		event.Source = domain.ViewSourceDirect
	}
	if len(input.Metadata) > 0 {
		event.Metadata = datatypes.JSONMap(input.Metadata)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return domain.ViewEvent{}, fmt.Errorf("failed to create view event: %w", err)
	}

	return *event, nil
}

// GetHistory returns the user's view events, newest first.
func (s *Service) GetHistory(ctx context.Context, userID uint, limit int) ([]domain.ViewEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	events, err := s.eventRepo.ListForUser(ctx, userID, limit)
	if err != nil {
		logger.Error("failed to list browsing history", "user_id", userID, "error", err)
		return nil, err
	}

	return events, nil
}

// ClearHistory deletes all of the user's view events.
func (s *Service) ClearHistory(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.eventRepo.DeleteForUser(ctx, userID); err != nil {
		logger.Error("failed to clear browsing history", "user_id", userID, "error", err)
		return err
	}

	return nil
}
