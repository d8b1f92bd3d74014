package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window rate limiter backed by Redis INCR and
// EXPIRE, suitable for multi-instance deployments where the in-memory
// limiter would undercount.
type RedisRateLimiter struct {
	redis     *redis.Client
	keyPrefix string
	max       int
	window    time.Duration
}

// NewRedisRateLimiter creates a Redis-backed limiter allowing max requests
// per window per key.
func NewRedisRateLimiter(client *redis.Client, max int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		redis:     client,
		keyPrefix: "rate_limit:",
		max:       max,
		window:    window,
	}
}

// GetRedisClient exposes the underlying client for health checks.
func (l *RedisRateLimiter) GetRedisClient() *redis.Client {
	return l.redis
}

// Allow records one request for key and reports whether it is within quota.
// The INCR and EXPIRE run in one pipeline, so the window is refreshed on
// every hit rather than only the first; a persistently abusive client never
// ages out of rejection.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	rKey := l.keyPrefix + key

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, rKey)
	pipe.Expire(ctx, rKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return RateLimitResult{}, err
	}

	count := incr.Val()
	if count > int64(l.max) {
		return RateLimitResult{Allowed: false, Remaining: 0, RetryAfter: l.window}, nil
	}

	return RateLimitResult{Allowed: true, Remaining: l.max - int(count)}, nil
}
