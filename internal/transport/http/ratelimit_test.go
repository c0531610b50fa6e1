package http

import "testing"

func TestRateLimiterCapsWithinWindow(t *testing.T) {
	limiter := newRateLimiter(2)
	defer limiter.stop()

	if !limiter.allow() || !limiter.allow() {
		t.Fatal("first two messages should pass")
	}
	if limiter.allow() {
		t.Fatal("third message should be rejected")
	}
}

func TestRateLimiterZeroDisables(t *testing.T) {
	limiter := newRateLimiter(0)
	defer limiter.stop()

	for range 100 {
		if !limiter.allow() {
			t.Fatal("disabled limiter must always allow")
		}
	}
}
