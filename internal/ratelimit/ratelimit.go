// Package ratelimit provides fixed-window request limiting keyed by client ID.
// The limiter is an injected dependency so handlers never touch package-level
// state, and so the backing store can be swapped (in-memory for a single
// instance, Redis when the service is horizontally scaled).
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether a request from the given client is allowed now.
type Limiter interface {
	Allow(ctx context.Context, clientID string) bool
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// FixedWindow is an in-memory fixed-window limiter: the counter resets
// entirely once the window has elapsed, it does not slide. Entries are never
// evicted; the map grows with the number of distinct clients seen over the
// process lifetime.
type FixedWindow struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	clients map[string]*windowEntry

	now func() time.Time
}

// NewFixedWindow creates an in-memory limiter allowing max requests per
// client per window.
func NewFixedWindow(window time.Duration, max int) *FixedWindow {
	return &FixedWindow{
		window:  window,
		max:     max,
		clients: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

var _ Limiter = (*FixedWindow)(nil)

// Allow reports whether a request from clientID is within the limit.
// A denied request does not consume from the counter.
func (l *FixedWindow) Allow(_ context.Context, clientID string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[clientID]
	if !ok || now.Sub(e.windowStart) > l.window {
		l.clients[clientID] = &windowEntry{count: 1, windowStart: now}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}
