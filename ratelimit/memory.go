package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	hits   []time.Time
	window time.Duration
}

// MemoryLimiter is a process-local sliding-window limiter. State is lost on restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryLimiter creates an empty in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 {
		return denyAll(window), nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{}
		l.buckets[key] = b
	}
	b.window = window
	b.hits = prune(b.hits, now.Add(-window))

	if len(b.hits) >= limit {
		retry := b.hits[0].Add(window).Sub(now)
		if retry <= 0 {
			retry = time.Millisecond
		}
		return Result{Allowed: false, Limit: limit, Remaining: 0, RetryAfter: retry}, nil
	}

	b.hits = append(b.hits, now)
	return Result{Allowed: true, Limit: limit, Remaining: limit - len(b.hits)}, nil
}

// prune drops hits at or before cutoff. hits are in ascending order.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}

// Sweep removes keys whose window has fully elapsed and returns how many were removed.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		b.hits = prune(b.hits, now.Add(-b.window))
		if len(b.hits) == 0 {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
