package rediscache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/BearBump/FreightSite/internal/cache"
)

// RateLimiter считает отправки форм в фиксированном окне.
type RateLimiter struct {
	c *redis.Client
}

func NewRateLimiter(addr string) *RateLimiter {
	return NewRateLimiterWithClient(redis.NewClient(&redis.Options{Addr: addr}))
}

// NewRateLimiterWithClient shares the client of the shipment cache.
func NewRateLimiterWithClient(c *redis.Client) *RateLimiter {
	return &RateLimiter{c: c}
}

// Allow делает INCR по ключу и ставит TTL только на первом инкременте,
// чтобы окно не сдвигалось с каждой заявкой. Остаток TTL уходит клиенту в Retry-After.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (cache.Decision, error) {
	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return cache.Decision{}, errors.Wrap(err, "redis ratelimit")
	}

	n := incr.Val()
	d := cache.Decision{
		Allowed:    n <= limit,
		Count:      n,
		Remaining:  max(limit-n, 0),
		RetryAfter: ttl.Val(),
	}
	if d.RetryAfter <= 0 {
		d.RetryAfter = window
	}
	return d, nil
}
