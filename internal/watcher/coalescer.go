package watcher

import (
	"time"

	"github.com/rodrigogs/vibewatch/internal/event"
)

// pendingEvent is a raw event waiting out its debounce window. At most one
// exists per path; a newer event for the same path replaces it outright.
type pendingEvent struct {
	path     string
	event    event.Raw
	lastSeen time.Time
}

// coalescer folds bursts of raw events into one matured event per path per
// debounce window. It is owned by the orchestrator goroutine and must not be
// touched from anywhere else; that ownership is what makes it lock-free.
type coalescer struct {
	window  time.Duration
	pending map[string]pendingEvent
}

func newCoalescer(window time.Duration) *coalescer {
	return &coalescer{
		window:  window,
		pending: make(map[string]pendingEvent),
	}
}

// add records ev against each of its paths, replacing any pending entry for
// the same path and resetting its quiet-period clock.
func (c *coalescer) add(ev event.Raw, now time.Time) {
	for _, path := range ev.Paths {
		c.pending[path] = pendingEvent{path: path, event: ev, lastSeen: now}
	}
}

// sweep removes and returns every pending event whose quiet period has
// elapsed.
func (c *coalescer) sweep(now time.Time) []event.Raw {
	var matured []event.Raw
	for path, p := range c.pending {
		if now.Sub(p.lastSeen) >= c.window {
			delete(c.pending, path)
			matured = append(matured, p.event)
		}
	}
	return matured
}

func (c *coalescer) len() int { return len(c.pending) }
