//go:build !integration

package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"myntraMarket/domain"
)

type fakeEventRepo struct {
	events []domain.ViewEvent

	createErr error
	updateErr error
	findErr   error

	createCalls int
	updateCalls int
	deleteCalls int

	lastCreated *domain.ViewEvent
	lastUpdated *domain.ViewEvent
}

func (f *fakeEventRepo) FindActive(ctx context.Context, userID *uint, productID uint64, sessionID string, since time.Time) (*domain.ViewEvent, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.events {
		ev := &f.events[i]
		if ev.ProductID != productID || ev.SessionID != sessionID {
			continue
		}
		if (ev.UserID == nil) != (userID == nil) {
			continue
		}
		if ev.UserID != nil && *ev.UserID != *userID {
			continue
		}
		if ev.ViewedAt.Before(since) {
			continue
		}
		return ev, nil
	}
	return nil, nil
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.ViewEvent) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.lastCreated = event
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *domain.ViewEvent) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastUpdated = event
	return nil
}

func (f *fakeEventRepo) ListForUser(ctx context.Context, userID uint, limit int) ([]domain.ViewEvent, error) {
	out := make([]domain.ViewEvent, 0)
	for _, ev := range f.events {
		if ev.UserID != nil && *ev.UserID == userID {
			out = append(out, ev)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) DeleteForUser(ctx context.Context, userID uint) error {
	f.deleteCalls++
	kept := f.events[:0]
	for _, ev := range f.events {
		if ev.UserID == nil || *ev.UserID != userID {
			kept = append(kept, ev)
		}
	}
	f.events = kept
	return nil
}

func TestTrack_CreatesNewEvent(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewService(repo, 30*time.Minute)

	userID := uint(42)
	event, err := svc.Track(context.Background(), &userID, 7, "sess-1", TrackInput{
		TimeSpent:   12,
		ScrollDepth: 40,
		Source:      domain.ViewSourceSearch,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.createCalls != 1 || repo.updateCalls != 0 {
		t.Fatalf("expected one create and no update, got %d/%d", repo.createCalls, repo.updateCalls)
	}
	if event.TimeSpent != 12 || event.ScrollDepth != 40 {
		t.Fatalf("event measurements wrong: %+v", event)
	}
	if event.Source != domain.ViewSourceSearch {
		t.Fatalf("expected source preserved, got %q", event.Source)
	}
}

func TestTrack_DefaultsSourceToDirect(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewService(repo, 30*time.Minute)

	event, err := svc.Track(context.Background(), nil, 7, "sess-1", TrackInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Source != domain.ViewSourceDirect {
		t.Fatalf("expected direct source default, got %q", event.Source)
	}
}

func TestTrack_MergesWithinSessionWindow(t *testing.T) {
	userID := uint(42)
	repo := &fakeEventRepo{
		events: []domain.ViewEvent{{
			ID:          1,
			UserID:      &userID,
			ProductID:   7,
			SessionID:   "sess-1",
			ViewedAt:    time.Now().Add(-5 * time.Minute),
			TimeSpent:   30,
			ScrollDepth: 80,
			AddedToBag:  true,
			Source:      domain.ViewSourceSearch,
		}},
	}
	svc := NewService(repo, 30*time.Minute)

	event, err := svc.Track(context.Background(), &userID, 7, "sess-1", TrackInput{
		TimeSpent:       12,
		ScrollDepth:     95,
		AddedToWishlist: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.createCalls != 0 || repo.updateCalls != 1 {
		t.Fatalf("expected merge, got create=%d update=%d", repo.createCalls, repo.updateCalls)
	}

	// measurements take the max, flags accumulate, source survives
	if event.TimeSpent != 30 {
		t.Fatalf("time spent must never shrink, got %d", event.TimeSpent)
	}
	if event.ScrollDepth != 95 {
		t.Fatalf("expected deeper scroll kept, got %d", event.ScrollDepth)
	}
	if !event.AddedToWishlist || !event.AddedToBag {
		t.Fatalf("flags must accumulate, got wishlist=%v bag=%v", event.AddedToWishlist, event.AddedToBag)
	}
	if event.Source != domain.ViewSourceSearch {
		t.Fatalf("unset source must not overwrite, got %q", event.Source)
	}
}

func TestTrack_NewEventAfterSessionWindow(t *testing.T) {
	userID := uint(42)
	repo := &fakeEventRepo{
		events: []domain.ViewEvent{{
			ID:        1,
			UserID:    &userID,
			ProductID: 7,
			SessionID: "sess-1",
			ViewedAt:  time.Now().Add(-40 * time.Minute),
		}},
	}
	svc := NewService(repo, 30*time.Minute)

	_, err := svc.Track(context.Background(), &userID, 7, "sess-1", TrackInput{TimeSpent: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.createCalls != 1 {
		t.Fatalf("a view outside the window must insert a fresh event, create=%d update=%d",
			repo.createCalls, repo.updateCalls)
	}
}

func TestTrack_AnonymousAndUserEventsDoNotMerge(t *testing.T) {
	userID := uint(42)
	repo := &fakeEventRepo{
		events: []domain.ViewEvent{{
			ID:        1,
			UserID:    &userID,
			ProductID: 7,
			SessionID: "sess-1",
			ViewedAt:  time.Now().Add(-2 * time.Minute),
		}},
	}
	svc := NewService(repo, 30*time.Minute)

	_, err := svc.Track(context.Background(), nil, 7, "sess-1", TrackInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatal("anonymous view must not merge into an authenticated event")
	}
}

func TestTrack_Validation(t *testing.T) {
	svc := NewService(&fakeEventRepo{}, 30*time.Minute)

	if _, err := svc.Track(context.Background(), nil, 0, "sess-1", TrackInput{}); err == nil {
		t.Fatal("expected error for missing product id")
	}
	if _, err := svc.Track(context.Background(), nil, 7, "", TrackInput{}); err == nil {
		t.Fatal("expected error for missing session id")
	}
}

func TestTrack_StorageErrorPropagates(t *testing.T) {
	repo := &fakeEventRepo{createErr: errors.New("db down")}
	svc := NewService(repo, 30*time.Minute)

	if _, err := svc.Track(context.Background(), nil, 7, "sess-1", TrackInput{}); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}

func TestClearHistory(t *testing.T) {
	userID := uint(42)
	other := uint(43)
	repo := &fakeEventRepo{
		events: []domain.ViewEvent{
			{ID: 1, UserID: &userID, ProductID: 7, SessionID: "a", ViewedAt: time.Now()},
			{ID: 2, UserID: &other, ProductID: 8, SessionID: "b", ViewedAt: time.Now()},
		},
	}
	svc := NewService(repo, 30*time.Minute)

	if err := svc.ClearHistory(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := svc.GetHistory(context.Background(), other, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("other users' history must survive, got %d events", len(events))
	}
}
