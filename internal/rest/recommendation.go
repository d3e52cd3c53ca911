package rest

import (
	"context"
	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
	"myntraMarket/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	Recommend(ctx context.Context, productID uint64, userID *uint, limit int) ([]domain.Recommendation, error)
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	timeout               time.Duration
}

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: svc,
		timeout:               10 * time.Second,
	}
}

// GET /api/v1/products/:id/recommendations?limit=10
//
// Works for both authenticated and anonymous traffic: OptionalAuth
// sets user_id only when a valid token came with the request.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	metrics.RecommendationRequests.Inc()
	start := time.Now()
	defer func() {
		metrics.RecommendationLatency.Observe(time.Since(start).Seconds())
	}()

	productIdStr := c.Param("id")
	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var userID *uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendationService.Recommend(ctx, productId, userID, limit)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to compute recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
