// Package ratelimit implements fixed-window request limiting keyed by
// an arbitrary string (the contact API keys it by client IP).
//
// The store is process-local. Deployments running multiple instances
// should satisfy Limiter with a shared store instead; callers only
// depend on the interface.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of a single rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Check(key string) Decision
}

// entry tracks one key within the current window. Entries are replaced,
// not merged, once ResetAt has passed.
type entry struct {
	count   int
	resetAt time.Time
}

// FixedWindow is an in-memory Limiter with fixed-window semantics:
// the first request from a key opens a window of the configured
// duration; subsequent requests increment a counter until the window
// expires, at which point the entry is replaced.
type FixedWindow struct {
	mu          sync.Mutex
	entries     map[string]*entry
	maxRequests int
	window      time.Duration

	now  func() time.Time // test seam
	done chan struct{}
}

const sweepInterval = 5 * time.Minute

// NewFixedWindow creates a limiter allowing maxRequests per window per
// key and starts the background sweep that evicts expired entries.
func NewFixedWindow(maxRequests int, window time.Duration) *FixedWindow {
	fw := &FixedWindow{
		entries:     make(map[string]*entry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	go fw.sweepLoop()
	return fw
}

// Check applies the fixed-window algorithm for key.
func (fw *FixedWindow) Check(key string) Decision {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()

	e, ok := fw.entries[key]
	if !ok || e.resetAt.Before(now) {
		e = &entry{count: 1, resetAt: now.Add(fw.window)}
		fw.entries[key] = e
		return Decision{Allowed: true, Remaining: fw.maxRequests - 1, ResetAt: e.resetAt}
	}

	if e.count >= fw.maxRequests {
		return Decision{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return Decision{Allowed: true, Remaining: fw.maxRequests - e.count, ResetAt: e.resetAt}
}

// Limit returns the configured per-window request budget.
func (fw *FixedWindow) Limit() int {
	return fw.maxRequests
}

// Stop terminates the background sweep.
func (fw *FixedWindow) Stop() {
	close(fw.done)
}

func (fw *FixedWindow) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fw.sweep()
		case <-fw.done:
			return
		}
	}
}

// sweep deletes entries whose window has already closed. It never
// touches live entries, so it cannot race destructively with Check.
func (fw *FixedWindow) sweep() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	for key, e := range fw.entries {
		if e.resetAt.Before(now) {
			delete(fw.entries, key)
		}
	}
}
