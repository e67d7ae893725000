package seomaster

import (
	"sync"
	"time"
)

// ContactLimiter rate-limits contact form submissions per IP address over a
// sliding window.
type ContactLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	max     int
	window  time.Duration
	stop    chan struct{}
	stopped sync.Once
}

// NewContactLimiter creates a ContactLimiter that allows max submissions per
// window. Stop ends its cleanup goroutine.
func NewContactLimiter(max int, window time.Duration) *ContactLimiter {
	l := &ContactLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *ContactLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-l.window)
			l.mu.Lock()
			for ip := range l.hits {
				l.prune(ip, cutoff)
			}
			l.mu.Unlock()
		}
	}
}

// prune drops hits older than cutoff. l.mu must be held.
func (l *ContactLimiter) prune(ip string, cutoff time.Time) []time.Time {
	hits := l.hits[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.hits, ip)
		return nil
	}
	l.hits[ip] = kept
	return kept
}

// Reserve records a submission for ip and reports true if ip was still
// within the limit. The check and the record happen under one lock, so
// concurrent submissions cannot overshoot the limit.
func (l *ContactLimiter) Reserve(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.prune(ip, now.Add(-l.window))) >= l.max {
		return false
	}
	l.hits[ip] = append(l.hits[ip], now)
	return true
}

// Cancel gives back the most recent reservation of ip, for submissions that
// failed after Reserve.
func (l *ContactLimiter) Cancel(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	hits := l.hits[ip]
	switch len(hits) {
	case 0:
	case 1:
		delete(l.hits, ip)
	default:
		l.hits[ip] = hits[:len(hits)-1]
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *ContactLimiter) Stop() {
	l.stopped.Do(func() { close(l.stop) })
}
