package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateResult is the outcome of one rate limit check.
type RateResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimiter counts hits per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateResult, error)
}

var (
	_ RateLimiter = (*RedisRateLimiter)(nil)
	_ RateLimiter = (*MemoryRateLimiter)(nil)
)

// RedisRateLimiter allows limit hits per window for each key, shared across
// every instance using the same Redis.
type RedisRateLimiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisRateLimiter(rdb redis.Cmdable, prefix string, limit int64, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (RateResult, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return RateResult{}, fmt.Errorf("rate limit %s: %w", k, err)
	}

	return newRateResult(incr.Val(), l.limit, ttl.Val()), nil
}

// MemoryRateLimiter is the single-process fallback used without Redis.
type MemoryRateLimiter struct {
	limit  int64
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]memoryWindow
}

type memoryWindow struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryRateLimiter(limit int64, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]memoryWindow),
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (RateResult, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = memoryWindow{expiresAt: now.Add(l.window)}
		l.evict(now)
	}
	w.count++
	l.windows[key] = w

	return newRateResult(w.count, l.limit, w.expiresAt.Sub(now)), nil
}

func (l *MemoryRateLimiter) evict(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.expiresAt) {
			delete(l.windows, k)
		}
	}
}

func newRateResult(count, limit int64, ttl time.Duration) RateResult {
	res := RateResult{
		Allowed:   count <= limit,
		Remaining: max(limit-count, 0),
	}
	if !res.Allowed {
		res.RetryAfter = max(ttl, 0)
	}
	return res
}
