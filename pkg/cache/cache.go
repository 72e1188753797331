// Package cache is a JSON read-through cache on Redis. A Cache without a
// client is a no-op, so callers never branch on whether Redis is up.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/metrics"
)

// Cache wraps a Redis client with JSON encoding and a default TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect dials Redis and pings it. On failure it returns a no-op Cache
// together with the error so the caller can log and continue.
func Connect(ctx context.Context) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return Noop(), fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb, config.CacheTTL()), nil
}

// New wraps an existing client.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Noop returns a Cache that never hits.
func Noop() *Cache { return &Cache{} }

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get unmarshals key into dest. It reports a hit only when the key exists
// and decodes cleanly.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithCtx(ctx).Warn("cache get failed", "key", key, "error", err.Error())
		}
		metrics.CacheMisses.WithLabelValues(prefix(key)).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(prefix(key)).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(prefix(key)).Inc()
	return true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	return c.SetTTL(ctx, key, value, c.ttl)
}

// SetTTL stores value under key for ttl.
func (c *Cache) SetTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// Forget removes keys.
func (c *Cache) Forget(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Remember returns the cached value for key or calls load, caches its result
// and decodes it into dest. Cache write failures are logged, not returned.
func (c *Cache) Remember(ctx context.Context, key string, dest any, load func(ctx context.Context) (any, error)) error {
	if c.Get(ctx, key, dest) {
		return nil
	}

	v, err := load(ctx)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, v); err != nil {
		logger.WithCtx(ctx).Warn("cache set failed", "key", key, "error", err.Error())
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

// Ping reports Redis health. A no-op cache is healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

// ProductKey is the cache key of a product detail read.
func ProductKey(id string) string { return "product:" + id }

func prefix(key string) string {
	p, _, _ := strings.Cut(key, ":")
	return p
}
