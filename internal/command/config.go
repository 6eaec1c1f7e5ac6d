// Package command resolves which command applies to a file event, fills in
// template placeholders and launches the result without blocking the caller.
package command

import "github.com/rodrigogs/vibewatch/internal/event"

// Config holds the optional command templates, one per event class plus the
// OnChange fallback. An empty string means unset. The struct is a snapshot
// taken at startup and never mutated.
type Config struct {
	OnCreate string
	OnModify string
	OnDelete string
	OnChange string
}

// CommandFor returns the template configured for kind, falling back to
// OnChange when the specific one is unset. The second result is false when
// neither is configured.
func (c Config) CommandFor(kind event.Kind) (string, bool) {
	var cmd string
	switch kind.Op {
	case event.Create:
		cmd = c.OnCreate
	case event.Modify:
		cmd = c.OnModify
	case event.Remove:
		cmd = c.OnDelete
	}
	if cmd == "" {
		cmd = c.OnChange
	}
	return cmd, cmd != ""
}
