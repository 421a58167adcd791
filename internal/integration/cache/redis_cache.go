// Package cache implements the reference-data cache on Redis: a read-through
// layer over category and supplier lists, invalidated by domain events.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/property-ledger/backend/internal/application/adapter"
)

// redisReferenceCache implements the adapter.ReferenceCache interface.
type redisReferenceCache struct {
	client *redis.Client
}

// NewRedisReferenceCache creates a Redis-backed reference cache instance.
func NewRedisReferenceCache(client *redis.Client) adapter.ReferenceCache {
	return &redisReferenceCache{
		client: client,
	}
}

// Get retrieves a cached value. Misses and backend failures both come back as
// ok=false so callers fall through to the repository.
func (c *redisReferenceCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Reference cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

// Set stores a value with the given TTL.
func (c *redisReferenceCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Invalidate drops the given keys.
func (c *redisReferenceCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
