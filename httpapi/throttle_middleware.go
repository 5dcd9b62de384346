package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadali233755/blogging-app/blog/application"
	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// KeyFunc derives the rate-limit key for a request.
type KeyFunc func(r *http.Request) string

type ThrottleOptions struct {
	Store              domain.LimiterStore
	Stats              domain.ThrottleStatsStore
	KeyFn              KeyFunc
	KeyHeader          string
	TrustXForwardedFor bool
	RetryAfter         time.Duration
	AddHeaders         bool
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

// DefaultKeyFunc prefers an explicit key header, then the first
// X-Forwarded-For hop when trusted, then the remote address.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}
		return clientIP(r, trustXFF)
	}
}

// Throttle rejects over-quota clients with 429 and a Retry-After.
// Stats recording is best-effort and never blocks the request.
func Throttle(opts ThrottleOptions) Middleware {
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}

	svc := application.ThrottleService{
		Store:      opts.Store,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddHeaders {
				w.Header().Set("X-RateLimit-Key", key)
				if ri, ok := opts.Store.(rateInfo); ok {
					w.Header().Set("X-RateLimit-RPS", strconv.FormatFloat(ri.RPS(), 'f', -1, 64))
					w.Header().Set("X-RateLimit-Burst", strconv.Itoa(ri.Burst()))
				}
			}

			dec := svc.Decide(domain.ClientKey(key))
			if opts.Stats != nil {
				_ = opts.Stats.Record(r.Context(), domain.ThrottleEvent{
					Key:     domain.ClientKey(key),
					Allowed: dec.Allowed,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				})
			}
			if !dec.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())))
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type AdmissionOptions struct {
	Max            int
	AcquireTimeout time.Duration
}

// Admission caps in-flight requests, answering 503 when the pool is
// saturated past the acquire timeout.
func Admission(opts AdmissionOptions, pool domain.SlotPool) Middleware {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	svc := application.AdmissionService{
		Pool:           pool,
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := svc.Acquire(r.Context())
			if !ok {
				writeError(w, http.StatusServiceUnavailable, "Server busy")
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
