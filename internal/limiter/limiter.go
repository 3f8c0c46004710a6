// Package limiter implements a sliding-window request counter used for soft
// abuse mitigation on public endpoints. It is process-local and non-durable:
// counts reset on restart and are not shared between instances, so it must
// not be treated as a security boundary. The CounterStore interface is the
// seam for an externally backed implementation.
package limiter

import (
	"time"
)

// Result describes a single rate limit decision.
type Result struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// CounterStore counts hits per key within a window. Increment starts a new
// window when the previous one has elapsed (lazy reset); Sweep evicts fully
// expired keys to bound memory.
type CounterStore interface {
	Increment(key string, window time.Duration) (count int, resetAt time.Time)
	Sweep(now time.Time)
}

// Limiter applies a max-per-window policy on top of a CounterStore.
type Limiter struct {
	max    int
	window time.Duration
	store  CounterStore
}

// New creates a limiter allowing max requests per window.
func New(max int, window time.Duration, store CounterStore) *Limiter {
	return &Limiter{max: max, window: window, store: store}
}

// Check records one hit for the identifier (normally the client IP),
// optionally namespaced by route so different endpoints keep independent
// budgets. The first hit in a fresh window yields Remaining = max-1; once
// the count exceeds max the result stays disallowed until the window resets.
func (l *Limiter) Check(identifier, route string) Result {
	key := identifier
	if route != "" {
		key = route + ":" + identifier
	}

	count, resetAt := l.store.Increment(key, l.window)

	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= l.max,
		Remaining: remaining,
		Limit:     l.max,
		ResetAt:   resetAt,
	}
}
