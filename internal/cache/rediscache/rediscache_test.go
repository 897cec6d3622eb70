package rediscache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/BearBump/FreightSite/internal/cache"
)

var (
	_ cache.BytesCache = (*RedisCache)(nil)
	_ cache.Limiter    = (*RateLimiter)(nil)
)

func TestRedisCache_GetSetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	key := cache.ShipmentKey("AB123")
	require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))

	b, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), b)

	require.NoError(t, c.Delete(ctx, key))
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Delete(ctx))
	require.NoError(t, c.Ping(ctx))
}

func TestRedisCache_TTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRateLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	rl := NewRateLimiter(mr.Addr())

	ctx := context.Background()
	key := cache.SubmitLimitKey("10.0.0.1")
	d, err := rl.Allow(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.Equal(t, int64(1), d.Count)
	require.Equal(t, int64(1), d.Remaining)
	require.Equal(t, time.Minute, d.RetryAfter)

	// окно не продлевается следующими заявками
	mr.FastForward(20 * time.Second)
	d, _ = rl.Allow(ctx, key, 2, time.Minute)
	require.True(t, d.Allowed)
	require.Equal(t, int64(2), d.Count)
	require.Equal(t, 40*time.Second, d.RetryAfter)

	d, _ = rl.Allow(ctx, key, 2, time.Minute)
	require.False(t, d.Allowed)
	require.Equal(t, int64(3), d.Count)
	require.Zero(t, d.Remaining)

	mr.FastForward(41 * time.Second)
	d, _ = rl.Allow(ctx, key, 2, time.Minute)
	require.True(t, d.Allowed)
	require.Equal(t, int64(1), d.Count)
}

func TestRateLimiter_SharedClient(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr())
	rl := NewRateLimiterWithClient(c.Client())

	d, err := rl.Allow(context.Background(), cache.SubmitLimitKey("shared"), 1, time.Minute)
	require.NoError(t, err)
	require.True(t, d.Allowed)
}
