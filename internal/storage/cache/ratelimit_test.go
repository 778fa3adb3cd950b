package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
)

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("Should allow up to the limit within a window", func(t *testing.T) {
		_, rdb := newRedis(t)
		l := cache.NewRedisRateLimiter(rdb, "login", 3, time.Minute)

		for i := range 3 {
			res, err := l.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, res.Allowed, "hit %d", i+1)
			assert.Equal(t, int64(2-i), res.Remaining)
		}

		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Positive(t, res.RetryAfter)

		res, err = l.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("Should reset after the window", func(t *testing.T) {
		mr, rdb := newRedis(t)
		l := cache.NewRedisRateLimiter(rdb, "login", 1, time.Minute)

		res, err := l.Allow(ctx, "ip")
		require.NoError(t, err)
		require.True(t, res.Allowed)
		res, err = l.Allow(ctx, "ip")
		require.NoError(t, err)
		require.False(t, res.Allowed)

		mr.FastForward(61 * time.Second)

		res, err = l.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})
}

func TestMemoryRateLimiter(t *testing.T) {
	ctx := context.Background()
	l := cache.NewMemoryRateLimiter(2, 50*time.Millisecond)

	for range 2 {
		res, err := l.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Zero(t, res.Remaining)

	assert.Eventually(t, func() bool {
		res, err := l.Allow(ctx, "ip")
		return err == nil && res.Allowed
	}, time.Second, 20*time.Millisecond)
}
