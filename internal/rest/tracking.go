package rest

import (
	"context"
	"myntraMarket/business/tracking"
	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
	"myntraMarket/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TrackingService interface {
	Track(ctx context.Context, userID *uint, productID uint64, sessionID string, input tracking.TrackInput) (domain.ViewEvent, error)
	GetHistory(ctx context.Context, userID uint, limit int) ([]domain.ViewEvent, error)
	ClearHistory(ctx context.Context, userID uint) error
}

type TrackingHandler struct {
	trackingService TrackingService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewTrackingHandler(trackingService TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type TrackViewRequest struct {
	ProductID       uint64         `json:"product_id" validate:"required"`
	SessionID       string         `json:"session_id"`
	TimeSpent       int            `json:"time_spent" validate:"gte=0"`
	ScrollDepth     int            `json:"scroll_depth" validate:"gte=0,lte=100"`
	Source          string         `json:"source" validate:"omitempty,oneof=direct search category recommendation wishlist"`
	AddedToWishlist bool           `json:"added_to_wishlist"`
	AddedToBag      bool           `json:"added_to_bag"`
	Metadata        map[string]any `json:"metadata"`
}

type TrackViewResponse struct {
	Event     domain.ViewEvent `json:"event"`
	SessionID string           `json:"session_id"`
}

// POST /api/v1/browsing-history
//
// Anonymous callers without a session id get a fresh one minted; the
// client is expected to echo it back on subsequent views so repeat
// views merge instead of piling up.
func (h *TrackingHandler) TrackView(c echo.Context) error {
	metrics.TrackingRequests.Inc()

	var req TrackViewRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate tracking request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var userID *uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = &uid
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event, err := h.trackingService.Track(ctx, userID, req.ProductID, sessionID, tracking.TrackInput{
		TimeSpent:       req.TimeSpent,
		ScrollDepth:     req.ScrollDepth,
		Source:          req.Source,
		AddedToWishlist: req.AddedToWishlist,
		AddedToBag:      req.AddedToBag,
		Metadata:        req.Metadata,
	})
	if err != nil {
		logger.Error("Failed to track view", err)
		if err.Error() == "product id is required" || err.Error() == "session id is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(TrackViewResponse{
		Event:     event,
		SessionID: sessionID,
	}))
}

func (h *TrackingHandler) GetHistory(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.trackingService.GetHistory(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to get browsing history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

func (h *TrackingHandler) ClearHistory(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.trackingService.ClearHistory(ctx, userID); err != nil {
		logger.Error("Failed to clear browsing history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("browsing history cleared"))
}
