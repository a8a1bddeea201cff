// Package ratelimit bounds per-client request rates with a fixed window
// counter. The window state lives in a Store so instances behind a load
// balancer can share limits through Redis.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Store counts hits per key inside a fixed window. Incr returns the
// count after incrementing and how long the current window has left.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// Limiter applies a fixed-window limit over a Store.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Check records a hit for key and reports whether it stays under the
// limit.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Result{}, err
	}
	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:    count <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}
