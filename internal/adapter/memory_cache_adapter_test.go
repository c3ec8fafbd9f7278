package adapter

import (
	"context"
	"testing"
	"time"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheAdapter_GetSetDelete(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "key", "value", 0))
	val, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", val)

	ok, err := cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Delete(ctx, "key"))
	ok, err = cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, cache.Ping(ctx))
}

func TestMemoryCacheAdapter_Expiration(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "short", "v", time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "v", 0))

	now = now.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	val, err := cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestMemoryCacheAdapter_ExpiredReadKeepsConcurrentWrite(t *testing.T) {
	cache := NewMemoryCacheAdapter()
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return start }
	require.NoError(t, cache.Set(ctx, "result", "stale", time.Minute))

	// Get reads the clock between dropping the read lock and taking the write lock;
	// a Set landing in that gap must survive the expiry cleanup.
	rewritten := false
	cache.now = func() time.Time {
		if !rewritten {
			rewritten = true
			require.NoError(t, cache.Set(ctx, "result", "fresh", 0))
		}
		return start.Add(2 * time.Minute)
	}

	val, err := cache.Get(ctx, "result")
	require.NoError(t, err)
	assert.Equal(t, "fresh", val)

	val, err = cache.Get(ctx, "result")
	require.NoError(t, err)
	assert.Equal(t, "fresh", val)
}
