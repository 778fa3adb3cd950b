package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisCache(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	ctx := context.Background()

	t.Run("Should report a miss for absent keys", func(t *testing.T) {
		_, rdb := newRedis(t)
		c := cache.NewRedisCache(rdb)

		var got payload
		ok, err := c.Get(ctx, "missing", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should store values until they expire", func(t *testing.T) {
		mr, rdb := newRedis(t)
		c := cache.NewRedisCache(rdb)

		require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))

		var got payload
		ok, err := c.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, payload{Name: "a", Count: 2}, got)

		mr.FastForward(2 * time.Minute)
		ok, err = c.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should delete keys", func(t *testing.T) {
		mr, rdb := newRedis(t)
		c := cache.NewRedisCache(rdb)
		require.NoError(t, c.Set(ctx, "k", 1, 0))

		require.NoError(t, c.Delete(ctx, "k"))
		require.NoError(t, c.Delete(ctx))

		assert.False(t, mr.Exists("k"))
	})

	t.Run("Should surface connection errors", func(t *testing.T) {
		mr, rdb := newRedis(t)
		c := cache.NewRedisCache(rdb)
		mr.Close()

		var got payload
		_, err := c.Get(ctx, "k", &got)
		assert.Error(t, err)
	})
}

func TestNopCache(t *testing.T) {
	var c cache.NopCache

	require.NoError(t, c.Set(context.Background(), "k", 1, time.Minute))

	var got int
	ok, err := c.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
