package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/monitoring"

	"github.com/redis/go-redis/v9"
)

const (
	lookupHit   = "hit"
	lookupMiss  = "miss"
	lookupError = "error"
)

// RedisCacheAdapter implements domain.Cache on a Redis client.
// Errors carry the key so callers can log them without extra context.
type RedisCacheAdapter struct {
	client *redis.Client
}

// NewRedisCacheAdapter wraps a connected client.
func NewRedisCacheAdapter(client *redis.Client) *RedisCacheAdapter {
	return &RedisCacheAdapter{client: client}
}

func recordLookup(backend, result string) {
	monitoring.CacheLookups.WithLabelValues(backend, result).Inc()
}

// Get returns domain.ErrCacheMiss for absent keys.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		recordLookup("redis", lookupMiss)
		return "", domain.ErrCacheMiss
	case err != nil:
		recordLookup("redis", lookupError)
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	recordLookup("redis", lookupHit)
	return val, nil
}

// Set stores value under key. Zero expiration keeps the key until it is deleted.
func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if expiration < 0 {
		return fmt.Errorf("redis set %s: negative expiration %s", key, expiration)
	}
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// Delete is a no-op for absent keys.
func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ domain.Cache = (*RedisCacheAdapter)(nil)
