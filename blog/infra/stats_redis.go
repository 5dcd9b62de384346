package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// RedisThrottleStats records allow/deny decisions in Redis hashes:
// a cumulative total, optional per-minute buckets, per-route counters
// and, when enabled, per-key counters. Time-bucketed and per-key hashes
// carry a TTL; the total does not.
type RedisThrottleStats struct {
	rdb *redis.Client

	prefix string
	ttl    time.Duration
	bucket string // "minute" (default) or "none"

	trackKeys bool
}

type RedisThrottleStatsOption func(*RedisThrottleStats)

func WithStatsPrefix(prefix string) RedisThrottleStatsOption {
	return func(s *RedisThrottleStats) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisThrottleStatsOption {
	return func(s *RedisThrottleStats) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisThrottleStatsOption {
	return func(s *RedisThrottleStats) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisThrottleStatsOption {
	return func(s *RedisThrottleStats) { s.trackKeys = track }
}

func NewRedisThrottleStats(rdb *redis.Client, opts ...RedisThrottleStatsOption) *RedisThrottleStats {
	s := &RedisThrottleStats{
		rdb:    rdb,
		prefix: "blog:throttle",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisThrottleStats) Record(ctx context.Context, ev domain.ThrottleEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if route := strings.TrimSpace(ev.Method + " " + ev.Path); route != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", route+":"+field, 1)
	}

	if s.trackKeys {
		if k := strings.TrimSpace(string(ev.Key)); k != "" {
			keyKey := s.prefix + ":key:" + k
			pipe.HIncrBy(ctx, keyKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, keyKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
