package edgar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seenimoa/secanalyzer/internal/config"
)

// DocumentCache stores fetched filing documents.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// RedisCache is a DocumentCache backed by Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the configured Redis. It returns nil, nil when
// no address is configured.
func NewRedisCache(ctx context.Context, cfg config.CacheConfig) (*RedisCache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return &RedisCache{client: client}, nil
}

// Get returns the cached body for key.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stores body under key for ttl.
func (r *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, body, ttl).Err()
}

// Close releases the connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
