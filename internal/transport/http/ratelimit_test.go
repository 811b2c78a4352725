package http

import (
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2)
	rl.now = func() time.Time { return now }

	if !rl.allow() || !rl.allow() {
		t.Fatal("first two events should pass")
	}
	if rl.allow() {
		t.Fatal("third event in the window should be rejected")
	}

	now = now.Add(time.Minute)
	if !rl.allow() {
		t.Fatal("limit should reset after the window")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	var nilLimiter *rateLimiter
	if !nilLimiter.allow() {
		t.Fatal("nil limiter must allow")
	}
	rl := newRateLimiter(0)
	for i := 0; i < 100; i++ {
		if !rl.allow() {
			t.Fatal("zero limit must allow everything")
		}
	}
}
