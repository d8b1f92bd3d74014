package services

import (
	"context"
	"sync"
	"time"
)

// RateLimitResult is the outcome of a single check-and-increment call.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the delay to advertise to a rejected client.
	RetryAfter time.Duration
}

// RateLimiter is the check-and-increment abstraction over the rate limit
// store. Every call counts the request it is answering for, so callers must
// invoke it exactly once per request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// rateLimitRecord tracks one client identity inside the current window.
type rateLimitRecord struct {
	count         int
	windowResetAt time.Time
}

// MemoryRateLimiter is a fixed-window rate limiter backed by a process-wide
// in-memory map. Records expire lazily: an entry whose window has passed is
// replaced on the next lookup for its key. The map is bounded only in
// per-key memory, not key cardinality, and does not survive restarts or
// multi-instance deployment; use the Redis-backed limiter for those.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	records map[string]*rateLimitRecord
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryRateLimiter creates an in-memory limiter allowing max requests
// per window per key.
func NewMemoryRateLimiter(max int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		records: make(map[string]*rateLimitRecord),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one request for key and reports whether it is within quota.
func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[key]
	if !ok || now.After(rec.windowResetAt) {
		l.records[key] = &rateLimitRecord{count: 1, windowResetAt: now.Add(l.window)}
		return RateLimitResult{Allowed: true, Remaining: l.max - 1}, nil
	}

	if rec.count >= l.max {
		return RateLimitResult{Allowed: false, Remaining: 0, RetryAfter: l.window}, nil
	}

	rec.count++
	return RateLimitResult{Allowed: true, Remaining: l.max - rec.count}, nil
}

// Len reports the number of tracked keys, counting entries whose window has
// already passed but which have not been looked up since.
func (l *MemoryRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
