package wishlist

import (
	"context"
	"errors"
	"fmt"
	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
)

// WishlistRepository contract interface
type WishlistRepository interface {
	ListFor(ctx context.Context, userID uint, limit int) ([]domain.WishlistItem, error)
	Add(ctx context.Context, item *domain.WishlistItem) error
	Remove(ctx context.Context, userID uint, productID uint64) error
}

// ProductRepository verifies referenced products exist.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type wishlistService struct {
	wishlistRepo WishlistRepository
	productRepo  ProductRepository
}

func NewWishlistService(wishlistRepo WishlistRepository, productRepo ProductRepository) *wishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID uint, limit int) ([]domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get wishlist")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 100
	}

	items, err := s.wishlistRepo.ListFor(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to list wishlist", err)
		return nil, err
	}

	return items, nil
}

func (s *wishlistService) AddToWishlist(ctx context.Context, userID uint, productID uint64) (*domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when add to wishlist")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		logger.Error("invalid product id when adding to wishlist")
		return nil, errors.New("invalid product id")
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Error("product not found", err)
		return nil, errors.New("product not found")
	}

	item := &domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}

	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		logger.Error("failed to add wishlist item", err)
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	logger.Info("wishlist item added", "user_id", userID, "product_id", productID)

	return item, nil
}

func (s *wishlistService) RemoveFromWishlist(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when remove from wishlist")
		return fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		logger.Error("invalid product id when removing from wishlist")
		return errors.New("invalid product id")
	}

	if err := s.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		logger.Error("failed to remove wishlist item", err)
		return err
	}

	logger.Info("wishlist item removed", "user_id", userID, "product_id", productID)

	return nil
}
