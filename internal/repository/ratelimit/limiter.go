// Package ratelimit implements a fixed-window request limiter on top of the
// key-value store (INCRBY + EXPIRE NX), so the counter survives restarts and
// is shared across instances when backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/dema-cloud/prodmatch/internal/domain"
)

// store is the consumer interface for limiter operations (ISP).
type store interface {
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Limiter counts requests per identifier within a fixed window.
type Limiter struct {
	store     store
	keyPrefix string
	limit     int64
	window    time.Duration
}

// Status reports the outcome of an Allow call.
type Status struct {
	// Remaining is the number of requests left in the current window.
	Remaining int64
	// RetryAfter is how long until the window resets.
	RetryAfter time.Duration
}

// New creates a limiter allowing limit requests per window per identifier.
func New(s store, keyPrefix string, limit int64, window time.Duration) *Limiter {
	return &Limiter{store: s, keyPrefix: keyPrefix, limit: limit, window: window}
}

// Allow consumes one request for the identifier. When the window budget is
// exhausted it returns domain.ErrRateLimited together with the reset delay.
func (l *Limiter) Allow(ctx context.Context, identifier string) (Status, error) {
	key := l.keyPrefix + "ratelimit:" + identifier

	count, err := l.store.IncrBy(ctx, key, 1)
	if err != nil {
		return Status{}, fmt.Errorf("rate limit incr %s: %w", identifier, err)
	}
	// NX: the window starts at the first request and is not extended by
	// subsequent ones.
	if err := l.store.Expire(ctx, key, l.window, true); err != nil {
		return Status{}, fmt.Errorf("rate limit expire %s: %w", identifier, err)
	}

	if count > l.limit {
		retryAfter, err := l.store.TTL(ctx, key)
		if err != nil {
			// TTL failure degrades the Retry-After hint, not the verdict.
			retryAfter = l.window
		}
		return Status{Remaining: 0, RetryAfter: retryAfter},
			fmt.Errorf("identifier %s: %w", identifier, domain.ErrRateLimited)
	}

	return Status{Remaining: l.limit - count}, nil
}
