package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myntraMarket/domain"
	"myntraMarket/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type RecommendationCache struct {
	Client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		Client: client,
	}
}

func cacheKey(productID uint64, userID *uint) string {
	if userID == nil {
		return fmt.Sprintf("reco:product:%d:user:anon", productID)
	}
	return fmt.Sprintf("reco:product:%d:user:%d", productID, *userID)
}

// Get returns nil on a miss. An entry whose embedded expiry has passed
// is treated as a miss even when the Redis TTL has not fired yet.
func (c *RecommendationCache) Get(ctx context.Context, productID uint64, userID *uint) (*domain.CachedRecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := c.Client.Get(ctx, cacheKey(productID, userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendation cache: %w", err)
	}

	var set domain.CachedRecommendationSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation cache entry: %w", err)
	}

	if !set.Live(time.Now()) {
		return nil, nil
	}

	return &set, nil
}

func (c *RecommendationCache) Put(ctx context.Context, set domain.CachedRecommendationSet, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	// Empty sets are not worth pinning for a full TTL.
	if len(set.Items) == 0 {
		logger.Debug("skipping cache write for empty recommendation set", "product_id", set.ForProduct)
		return nil
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation cache entry: %w", err)
	}

	if err := c.Client.Set(ctx, cacheKey(set.ForProduct, set.ForUser), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write recommendation cache: %w", err)
	}

	return nil
}
