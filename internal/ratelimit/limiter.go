// Package ratelimit provides per-client sliding-window admission control,
// independent of any transport.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of an admission check. RetryAfter is the wait
// until the oldest in-window admission expires; zero when Allowed.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// SlidingWindow admits at most limit events per key within the trailing
// window. Checking and recording happen under one lock, so concurrent
// attempts for the same key can never exceed the limit.
type SlidingWindow struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*clientWindow
}

type clientWindow struct {
	timestamps []time.Time
}

// NewSlidingWindow creates a limiter allowing limit admissions per key per
// window and starts a background sweep of idle keys.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	sw := &SlidingWindow{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientWindow),
	}
	go sw.cleanupLoop()
	return sw
}

// Admit records an admission for key at instant now if the key has
// remaining capacity. A rejected attempt consumes no slot. Entries strictly
// older than now minus the window are pruned first.
func (sw *SlidingWindow) Admit(key string, now time.Time) Decision {
	windowStart := now.Add(-sw.window)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	cw, ok := sw.clients[key]
	if !ok {
		cw = &clientWindow{}
		sw.clients[key] = cw
	}

	// Prune expired timestamps; in-place filter on the shared backing array.
	valid := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if !ts.Before(windowStart) {
			valid = append(valid, ts)
		}
	}
	cw.timestamps = valid

	if len(cw.timestamps) >= sw.limit {
		oldest := cw.timestamps[0]
		return Decision{RetryAfter: oldest.Add(sw.window).Sub(now)}
	}

	cw.timestamps = append(cw.timestamps, now)
	return Decision{Allowed: true}
}

// cleanupLoop periodically removes keys whose windows have fully expired,
// bounding map growth from one-off clients.
func (sw *SlidingWindow) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		windowStart := time.Now().Add(-sw.window)
		sw.mu.Lock()
		for key, cw := range sw.clients {
			valid := cw.timestamps[:0]
			for _, ts := range cw.timestamps {
				if !ts.Before(windowStart) {
					valid = append(valid, ts)
				}
			}
			cw.timestamps = valid
			if len(cw.timestamps) == 0 {
				delete(sw.clients, key)
			}
		}
		sw.mu.Unlock()
	}
}
