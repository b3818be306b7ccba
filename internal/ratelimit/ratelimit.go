// Package ratelimit implements the gateway's per-client request budget: an
// approximate sliding window over a trailing interval. State is process-local
// and unsynchronized across instances, which is acceptable for a
// single-instance deployment.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request timestamps per client key. Retained timestamps per
// key are bounded by the budget, so memory stays proportional to active
// clients.
type Limiter struct {
	mu       sync.Mutex
	window   time.Duration
	limit    int
	now      func() time.Time
	requests map[string][]time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source. Tests use it to step through windows.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a Limiter allowing limit requests per key within the trailing
// window.
func New(window time.Duration, limit int, opts ...Option) *Limiter {
	l := &Limiter{
		window:   window,
		limit:    limit,
		now:      time.Now,
		requests: map[string][]time.Time{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether the client identified by key may proceed. Timestamps
// older than the window are dropped first; a rejected request is not
// recorded, so rejections never extend the client's backoff.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.requests[key] = recent
		return false
	}

	l.requests[key] = append(recent, now)
	return true
}
