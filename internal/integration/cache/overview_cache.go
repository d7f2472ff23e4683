// Package cache implements the overview cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/financaspro/backend/internal/application/adapter"
)

// overviewCache implements adapter.OverviewCache on a Redis client. Entries
// expire on their own after the TTL; mutations invalidate eagerly so the
// dashboard never serves stale figures longer than one request.
type overviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOverviewCache creates a new Redis-backed overview cache.
func NewOverviewCache(client *redis.Client, ttl time.Duration) adapter.OverviewCache {
	return &overviewCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached serialized overview for the owner.
func (c *overviewCache) Get(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	payload, err := c.client.Get(ctx, overviewKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, adapter.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read overview cache: %w", err)
	}
	return payload, nil
}

// Set stores the serialized overview for the owner.
func (c *overviewCache) Set(ctx context.Context, ownerID uuid.UUID, payload []byte) error {
	if err := c.client.Set(ctx, overviewKey(ownerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write overview cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached overview for the owner.
func (c *overviewCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, overviewKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate overview cache: %w", err)
	}
	return nil
}

func overviewKey(ownerID uuid.UUID) string {
	return "overview:" + ownerID.String()
}
