package cache

import (
	"context"
	"time"
)

// LayeredCache fronts Redis with an in-process L1. Reads serve from memory
// when possible; writes and deletes go through to Redis first so other
// replicas converge on the same value.
type LayeredCache struct {
	mem       *MemoryCache
	redis     *RedisCache
	refillTTL time.Duration
}

func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := &layeredConfig{memoryMaxEntries: 1000, refillTTL: 30 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}
	return &LayeredCache{
		mem:       NewMemoryCache(WithMemoryMaxEntries(cfg.memoryMaxEntries)),
		redis:     redisCache,
		refillTTL: cfg.refillTTL,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := lc.redis.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.mem.Set(ctx, key, value, expiration)
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.mem.Get(ctx, key, dest); err == nil {
		return nil
	}
	if err := lc.redis.Get(ctx, key, dest); err != nil {
		return err
	}
	// Refill L1 for a bounded interval only; the authoritative TTL lives
	// in Redis and L1 must not outlive it by much.
	_ = lc.mem.Set(ctx, key, dest, lc.refillTTL)
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.mem.Delete(ctx, keys...)
	return lc.redis.Delete(ctx, keys...)
}

// Exists consults Redis only; L1 is a subset of L2.
func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	return lc.redis.Exists(ctx, keys...)
}

func (lc *LayeredCache) Close() error {
	_ = lc.mem.Close()
	return lc.redis.Close()
}
