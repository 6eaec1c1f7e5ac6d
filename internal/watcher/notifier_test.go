package watcher

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/rodrigogs/vibewatch/internal/event"
)

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want event.Kind
	}{
		{"create", fsnotify.Create, event.Kind{Op: event.Create}},
		{"write", fsnotify.Write, event.Kind{Op: event.Modify, Modify: event.ModifyData}},
		{"rename", fsnotify.Rename, event.Kind{Op: event.Modify, Modify: event.ModifyName}},
		{"remove", fsnotify.Remove, event.Kind{Op: event.Remove}},
		{"chmod", fsnotify.Chmod, event.Kind{Op: event.Modify, Modify: event.ModifyOther}},
		{"no recognized op", fsnotify.Op(0), event.Kind{Op: event.Other}},
		// Ops are bitmasks and may combine; classification precedence is
		// create, then write, then rename, then remove, then chmod.
		{"create wins over write", fsnotify.Create | fsnotify.Write, event.Kind{Op: event.Create}},
		{"write wins over rename", fsnotify.Write | fsnotify.Rename, event.Kind{Op: event.Modify, Modify: event.ModifyData}},
		{"rename wins over remove", fsnotify.Rename | fsnotify.Remove, event.Kind{Op: event.Modify, Modify: event.ModifyName}},
		{"remove wins over chmod", fsnotify.Remove | fsnotify.Chmod, event.Kind{Op: event.Remove}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := translateEvent(fsnotify.Event{Name: "/w/a.rs", Op: tt.op})
			if raw.Kind != tt.want {
				t.Errorf("translateEvent(%v).Kind = %+v, want %+v", tt.op, raw.Kind, tt.want)
			}
			if len(raw.Paths) != 1 || raw.Paths[0] != "/w/a.rs" {
				t.Errorf("translateEvent(%v).Paths = %v, want [/w/a.rs]", tt.op, raw.Paths)
			}
		})
	}
}

func TestForwardErrorFullChannelLogs(t *testing.T) {
	n := &fsNotifier{
		errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	n.errors <- errors.New("first")

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	if !n.forwardError(errors.New("second")) {
		t.Fatal("forwardError = false, want true while notifier is open")
	}
	if !strings.Contains(buf.String(), "dropping error") {
		t.Errorf("log output %q does not mention the dropped error", buf.String())
	}
}

func TestForwardErrorAfterClose(t *testing.T) {
	n := &fsNotifier{
		errors: make(chan error), // unbuffered, never drained
		done:   make(chan struct{}),
	}
	close(n.done)

	if n.forwardError(errors.New("late")) {
		t.Error("forwardError = true, want false after close")
	}
}
