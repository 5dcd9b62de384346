package application

import (
	"context"
	"time"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// ThrottleService turns a client key into an allow/deny decision. It
// carries no HTTP knowledge; the middleware translates the decision to
// status codes and headers.
type ThrottleService struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s ThrottleService) Decide(key domain.ClientKey) domain.Throttle {
	if s.Store == nil {
		return domain.Throttle{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Throttle{Allowed: true}
	}
	return domain.Throttle{Allowed: false, RetryAfter: s.RetryAfter}
}

// AdmissionService gates requests on a finite slot pool.
type AdmissionService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tries to take a slot, waiting at most AcquireTimeout when one
// is set (zero waits until ctx cancels). ok=false means nothing was
// acquired and release must not be called.
func (s AdmissionService) Acquire(ctx context.Context) (func(), bool) {
	if s.Pool == nil {
		return func() {}, true
	}

	if s.AcquireTimeout <= 0 {
		return s.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()
	return s.Pool.Acquire(acqCtx)
}
