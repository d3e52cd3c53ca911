package rest

import (
	"context"
	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type WishlistService interface {
	GetWishlist(ctx context.Context, userID uint, limit int) ([]domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID uint, productID uint64) (*domain.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID uint, productID uint64) error
}

type WishlistHandler struct {
	wishlistService WishlistService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type AddWishlistRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.wishlistService.GetWishlist(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to get wishlist", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddWishlistRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate wishlist request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.wishlistService.AddToWishlist(ctx, userID, req.ProductID)
	if err != nil {
		logger.Error("Failed to add wishlist item", err)
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	productIdStr := c.Param("productId")
	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.wishlistService.RemoveFromWishlist(ctx, userID, productId)
	if err != nil {
		logger.Error("Failed to remove wishlist item", err)
		if err.Error() == "wishlist item not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(productId))
}
