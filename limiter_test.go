package seomaster

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestContactLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewContactLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Reserve(ip) {
		t.Fatalf("expected first submission to be allowed")
	}
	if !limiter.Reserve(ip) {
		t.Fatalf("expected second submission to be allowed")
	}
	if limiter.Reserve(ip) {
		t.Fatalf("expected third submission to be blocked")
	}
}

func TestContactLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewContactLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Reserve(ip) {
		t.Fatalf("expected first submission to be allowed")
	}
	if limiter.Reserve(ip) {
		t.Fatalf("expected second submission to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Reserve(ip) {
		t.Fatalf("expected submission after window to be allowed")
	}
}

func TestContactLimiterIsPerIP(t *testing.T) {
	limiter := NewContactLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Reserve("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Reserve("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Reserve("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestContactLimiterCancel(t *testing.T) {
	limiter := NewContactLimiter(1, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.40"

	if !limiter.Reserve(ip) {
		t.Fatalf("expected first submission to be allowed")
	}
	limiter.Cancel(ip)
	if !limiter.Reserve(ip) {
		t.Fatalf("expected cancelled reservation to be given back")
	}
	if limiter.Reserve(ip) {
		t.Fatalf("expected limit to hold after the new reservation")
	}
	limiter.Cancel("203.0.113.41")
}

func TestContactLimiterConcurrentReserve(t *testing.T) {
	limiter := NewContactLimiter(5, time.Minute)
	defer limiter.Stop()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Reserve("203.0.113.50") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != 5 {
		t.Fatalf("allowed = %d, want exactly 5", got)
	}
}

func TestContactLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewContactLimiter(1, 10*time.Millisecond)
	limiter.Stop()
	limiter.Stop()
}
