package domain

import (
	"context"
	"time"
)

// ClientKey identifies the caller being rate limited (IP, API key, user).
type ClientKey string

// Limiter decides whether one more action is allowed right now. The infra
// implementation is a token bucket, but nothing here assumes that.
type Limiter interface {
	Allow() bool
}

// LimiterStore hands out a limiter per client key, caching as it sees fit.
type LimiterStore interface {
	Get(ClientKey) Limiter
}

// Throttle is the outcome of a rate-limit check.
type Throttle struct {
	Allowed bool
	// RetryAfter feeds the Retry-After header when blocking. Zero means
	// no recommendation.
	RetryAfter time.Duration
}

// ThrottleEvent is one allow/deny decision, recorded for visibility.
// Method and Path are plain strings so the type stays transport-neutral.
//
// Careful with cardinality: recording raw keys or paths without bounds
// can blow up the backing store.
type ThrottleEvent struct {
	Key     ClientKey
	Allowed bool
	Method  string
	Path    string
	At      time.Time
}

// ThrottleStatsStore persists throttle decisions. Implementations exist
// for memory and Redis; recording errors are best-effort and must never
// fail the request.
type ThrottleStatsStore interface {
	Record(ctx context.Context, ev ThrottleEvent) error
}

// SlotPool is a finite-capacity resource. Acquire blocks until a slot is
// free or ctx ends; the returned release must be called exactly once.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
