package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix = "analytics:"
	cacheTTL    = 5 * time.Minute
)

// Cache is a Redis cache-aside layer for computed aggregates. A nil client
// disables caching entirely; every lookup is then a miss.
type Cache struct {
	client *redis.Client
}

// NewCache creates a cache over the given Redis client, which may be nil.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis client is configured.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Get loads a cached value into dest. Returns false on miss or when caching
// is disabled.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.client == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return true, nil
}

// Set stores a value with the default TTL. A no-op when caching is disabled.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, cachePrefix+key, data, cacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// InvalidateUser removes every cached aggregate for one user.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}

	pattern := cachePrefix + "*:" + userID
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
