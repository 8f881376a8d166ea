package narrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"

	"github.com/chainsafe/swap-status/pkg/config"
)

const localCacheTTL = time.Minute

// RedisCache is a Cache backed by Redis with a small in-process TinyLFU layer.
type RedisCache struct {
	client *redis.Client
	cache  *cache.Cache
	ttl    time.Duration
}

// NewRedisCache connects to the configured Redis instance.
func NewRedisCache(ctx context.Context, cfg *config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}

	opts := &cache.Options{Redis: client}
	if cfg.LocalSize > 0 {
		opts.LocalCache = cache.NewTinyLFU(cfg.LocalSize, localCacheTTL)
	}
	return &RedisCache{
		client: client,
		cache:  cache.New(opts),
		ttl:    cfg.TTL,
	}, nil
}

// Get returns the cached value for key. A miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.cache.Get(ctx, key, &value)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key for the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   c.ttl,
	})
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
