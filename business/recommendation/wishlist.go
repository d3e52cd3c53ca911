package recommendation

import (
	"context"
	"fmt"

	"myntraMarket/domain"
)

// Anchor price used when a wishlist carries no priced products and the
// target has no price either.
const wishlistDefaultAnchorPrice = 1000

// wishlistSignal proposes products matching the subject's saved-items
// profile: any category present on the wishlist, priced near the
// wishlist's mean price. Every candidate carries the same fixed score;
// the wishlist expresses taste, not ranking.
func (s *Service) wishlistSignal(
	ctx context.Context,
	target domain.Product,
	userID uint,
) ([]Candidate, error) {

	items, err := s.affinityRepo.ListFor(ctx, userID, s.cfg.WishlistEntryCap)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	categorySet := make(map[string]struct{})
	priceSum := 0.0
	priced := 0
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		if item.Product.Category != "" {
			categorySet[item.Product.Category] = struct{}{}
		}
		if item.Product.Price > 0 {
			priceSum += item.Product.Price
			priced++
		}
	}

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	meanPrice := float64(wishlistDefaultAnchorPrice)
	if priced > 0 {
		meanPrice = priceSum / float64(priced)
	} else if target.Price > 0 {
		meanPrice = target.Price
	}

	filter := domain.ProductFilter{
		Categories: categories,
		PriceMin:   meanPrice * (1 - s.cfg.WishlistPriceWindow),
		PriceMax:   meanPrice * (1 + s.cfg.WishlistPriceWindow),
		ExcludeID:  target.ID,
		ActiveOnly: true,
	}

	products, err := s.catalogRepo.FindMany(ctx, filter, s.cfg.WishlistLimit)
	if err != nil {
		return nil, fmt.Errorf("load wishlist matches: %w", err)
	}

	cands := make([]Candidate, 0, len(products))
	for _, p := range products {
		cands = append(cands, Candidate{
			Product: p,
			Score:   s.cfg.WishlistScore,
			Reason:  domain.ReasonWishlist,
		})
	}

	return cands, nil
}
