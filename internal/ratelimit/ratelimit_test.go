package ratelimit

import (
	"testing"
	"time"
)

func TestAllowUpToLimit(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(time.Minute, 20, WithClock(func() time.Time { return now }))

	for i := 0; i < 20; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d was rejected, want allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("request 21 was allowed, want rejected")
	}
}

func TestWindowSlides(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(time.Minute, 2, WithClock(func() time.Time { return now }))

	limiter.Allow("client")
	now = now.Add(30 * time.Second)
	limiter.Allow("client")

	if limiter.Allow("client") {
		t.Fatal("third request inside window was allowed")
	}

	// 31 seconds later the first timestamp has aged out.
	now = now.Add(31 * time.Second)
	if !limiter.Allow("client") {
		t.Error("request after window slid was rejected")
	}
}

func TestRejectionsAreNotRecorded(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(time.Minute, 1, WithClock(func() time.Time { return now }))

	limiter.Allow("client")
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		if limiter.Allow("client") {
			t.Fatalf("request at +%ds was allowed inside the window", i+1)
		}
	}

	// Rejections did not extend the backoff: once the single accepted
	// timestamp ages out, the client is allowed again.
	now = now.Add(51 * time.Second)
	if !limiter.Allow("client") {
		t.Error("request after original timestamp expired was rejected")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	limiter := New(time.Minute, 1)

	if !limiter.Allow("a") {
		t.Fatal("first request for key a was rejected")
	}
	if limiter.Allow("a") {
		t.Error("second request for key a was allowed")
	}
	if !limiter.Allow("b") {
		t.Error("first request for key b was rejected")
	}
}
