package bag

import (
	"context"
	"errors"
	"fmt"
	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
)

// BagRepository contract interface
type BagRepository interface {
	ListFor(ctx context.Context, userID uint) ([]domain.BagItem, error)
	FindItem(ctx context.Context, userID uint, productID uint64) (*domain.BagItem, error)
	Upsert(ctx context.Context, item *domain.BagItem) error
	Remove(ctx context.Context, userID uint, productID uint64) error
}

// ProductRepository verifies referenced products exist.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type bagService struct {
	bagRepo     BagRepository
	productRepo ProductRepository
}

func NewBagService(bagRepo BagRepository, productRepo ProductRepository) *bagService {
	return &bagService{
		bagRepo:     bagRepo,
		productRepo: productRepo,
	}
}

func (s *bagService) GetBag(ctx context.Context, userID uint) ([]domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get bag")
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.bagRepo.ListFor(ctx, userID)
	if err != nil {
		logger.Error("Failed to list bag", err)
		return nil, err
	}

	return items, nil
}

func (s *bagService) AddToBag(ctx context.Context, userID uint, productID uint64, quantity int, size string) (*domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when add to bag")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		logger.Error("invalid product id when adding to bag")
		return nil, errors.New("invalid product id")
	}

	if quantity <= 0 {
		quantity = 1
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Error("product not found", err)
		return nil, errors.New("product not found")
	}

	// Adding a product already in the bag bumps its quantity.
	existing, err := s.bagRepo.FindItem(ctx, userID, productID)
	if err != nil {
		logger.Error("failed to look up bag item", err)
		return nil, fmt.Errorf("failed to look up bag item: %w", err)
	}

	item := &domain.BagItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
	}
	if existing != nil {
		item = existing
		item.Quantity += quantity
		if size != "" {
			item.Size = size
		}
	}

	if err := s.bagRepo.Upsert(ctx, item); err != nil {
		logger.Error("failed to save bag item", err)
		return nil, fmt.Errorf("failed to save bag item: %w", err)
	}

	logger.Info("bag item saved", "user_id", userID, "product_id", productID, "quantity", item.Quantity)

	return item, nil
}

func (s *bagService) UpdateQuantity(ctx context.Context, userID uint, productID uint64, quantity int) (*domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update bag quantity")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if quantity <= 0 {
		return nil, errors.New("quantity must be greater than 0")
	}

	item, err := s.bagRepo.FindItem(ctx, userID, productID)
	if err != nil {
		logger.Error("failed to look up bag item", err)
		return nil, fmt.Errorf("failed to look up bag item: %w", err)
	}
	if item == nil {
		return nil, errors.New("bag item not found")
	}

	item.Quantity = quantity

	if err := s.bagRepo.Upsert(ctx, item); err != nil {
		logger.Error("failed to update bag item", err)
		return nil, fmt.Errorf("failed to update bag item: %w", err)
	}

	return item, nil
}

func (s *bagService) RemoveFromBag(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when remove from bag")
		return fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		logger.Error("invalid product id when removing from bag")
		return errors.New("invalid product id")
	}

	if err := s.bagRepo.Remove(ctx, userID, productID); err != nil {
		logger.Error("failed to remove bag item", err)
		return err
	}

	logger.Info("bag item removed", "user_id", userID, "product_id", productID)

	return nil
}
