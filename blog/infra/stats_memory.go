package infra

import (
	"context"
	"sync"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

type Counters struct {
	Allowed int64
	Denied  int64
}

// MemoryThrottleStats keeps allow/deny counters in memory. Useful for
// tests and development; it never expires anything.
type MemoryThrottleStats struct {
	mu      sync.Mutex
	total   Counters
	byRoute map[string]Counters
	byKey   map[string]Counters

	trackKeys bool
}

type MemoryThrottleStatsOption func(*MemoryThrottleStats)

func WithTrackKeys(track bool) MemoryThrottleStatsOption {
	return func(s *MemoryThrottleStats) { s.trackKeys = track }
}

func NewMemoryThrottleStats(opts ...MemoryThrottleStatsOption) *MemoryThrottleStats {
	s := &MemoryThrottleStats{
		byRoute: make(map[string]Counters),
		byKey:   make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryThrottleStats) Record(_ context.Context, ev domain.ThrottleEvent) error {
	route := ev.Method + " " + ev.Path

	s.mu.Lock()
	defer s.mu.Unlock()

	bump := func(c *Counters) {
		if ev.Allowed {
			c.Allowed++
		} else {
			c.Denied++
		}
	}

	bump(&s.total)
	c := s.byRoute[route]
	bump(&c)
	s.byRoute[route] = c
	if s.trackKeys {
		k := s.byKey[string(ev.Key)]
		bump(&k)
		s.byKey[string(ev.Key)] = k
	}
	return nil
}

func (s *MemoryThrottleStats) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryThrottleStats) ByRoute() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byRoute))
	for k, v := range s.byRoute {
		out[k] = v
	}
	return out
}

func (s *MemoryThrottleStats) ByKey() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byKey))
	for k, v := range s.byKey {
		out[k] = v
	}
	return out
}
