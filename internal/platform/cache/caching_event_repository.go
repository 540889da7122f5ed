// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskbite_backend/internal/feature/dashboard/usecase"
)

// CachingEventRepository decorates an EventRepository with Redis caching.
// Calendar events are read far more often than notes or todos change, so
// results are cached per user and invalidated on every write.
type CachingEventRepository struct {
	inner     usecase.EventRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingEventRepository decorates an EventRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "events".
func NewCachingEventRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EventRepository, namespace string) *CachingEventRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "events"
	}
	return &CachingEventRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// cacheKey generates the per-user cache key.
func (c *CachingEventRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}

// EventsByUser retrieves events, checking cache first then falling back
// to the underlying repository.
func (c *CachingEventRepository) EventsByUser(ctx context.Context, userID uint) ([]usecase.Event, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.EventsByUser(ctx, userID)
	}

	key := c.cacheKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []usecase.Event
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the underlying repository
	out, err := c.inner.EventsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// InvalidateUser drops the cached events for one user. Called after any
// note or todo write.
func (c *CachingEventRepository) InvalidateUser(ctx context.Context, userID uint) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey(userID)).Err()
}
