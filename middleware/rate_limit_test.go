package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	rl := newRateLimiter()
	now := time.Now()

	for i := 0; i < rateLimitMax; i++ {
		if !rl.allow("10.0.0.1", now) {
			t.Fatalf("request %d denied below the limit", i+1)
		}
	}
	if rl.allow("10.0.0.1", now) {
		t.Fatalf("request above the limit was allowed")
	}
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	rl := newRateLimiter()
	now := time.Now()

	for i := 0; i < rateLimitMax; i++ {
		rl.allow("10.0.0.1", now)
	}
	if !rl.allow("10.0.0.2", now) {
		t.Fatalf("a different client was throttled by another client's traffic")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := newRateLimiter()
	start := time.Now()

	for i := 0; i < rateLimitMax; i++ {
		rl.allow("10.0.0.1", start)
	}
	if rl.allow("10.0.0.1", start.Add(30*time.Second)) {
		t.Fatalf("still inside the window, should be denied")
	}
	if !rl.allow("10.0.0.1", start.Add(rateLimitWindow+time.Second)) {
		t.Fatalf("window expired, request should be allowed")
	}
}
