// Package ratelimit provides sliding-window request throttling keyed by caller identity.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a single Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when Allowed
}

// Limiter decides whether another request for key fits in the sliding window.
// Implementations never block and must be safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

// denyAll rejects every request when the configured limit leaves no room.
func denyAll(window time.Duration) Result {
	return Result{Allowed: false, Limit: 0, Remaining: 0, RetryAfter: window}
}
