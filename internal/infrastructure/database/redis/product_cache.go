// internal/infrastructure/database/redis/product_cache.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// ProductCache implements product.Cache on Redis.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a catalog cache with the given TTL.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProductCache) Get(ctx context.Context, name string) (*product.Product, error) {
	data, err := c.client.Get(ctx, cacheKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, product.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var p product.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, p *product.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(p.Name), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *ProductCache) Delete(ctx context.Context, name string) error {
	if err := c.client.Del(ctx, cacheKey(name)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(name string) string {
	return fmt.Sprintf("product:%s", name)
}
