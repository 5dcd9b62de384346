package infra

import (
	"context"
	"testing"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

func TestMemoryThrottleStats_CountsByRouteAndKey(t *testing.T) {
	s := NewMemoryThrottleStats(WithTrackKeys(true))

	events := []domain.ThrottleEvent{
		{Key: "1.2.3.4", Allowed: true, Method: "GET", Path: "/posts"},
		{Key: "1.2.3.4", Allowed: false, Method: "GET", Path: "/posts"},
		{Key: "5.6.7.8", Allowed: true, Method: "POST", Path: "/comments"},
	}
	for _, ev := range events {
		if err := s.Record(context.Background(), ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	total := s.Total()
	if total.Allowed != 2 || total.Denied != 1 {
		t.Fatalf("expected total 2/1, got %+v", total)
	}
	if c := s.ByRoute()["GET /posts"]; c.Allowed != 1 || c.Denied != 1 {
		t.Fatalf("expected GET /posts 1/1, got %+v", c)
	}
	if c := s.ByKey()["1.2.3.4"]; c.Allowed != 1 || c.Denied != 1 {
		t.Fatalf("expected key 1.2.3.4 1/1, got %+v", c)
	}
}

func TestMemoryThrottleStats_KeysOffByDefault(t *testing.T) {
	s := NewMemoryThrottleStats()

	_ = s.Record(context.Background(), domain.ThrottleEvent{Key: "1.2.3.4", Allowed: true})
	if len(s.ByKey()) != 0 {
		t.Fatalf("expected no per-key tracking by default")
	}
}
