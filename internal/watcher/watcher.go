// Package watcher runs the event loop: raw notifications in, debounced and
// filtered dispatches out.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rodrigogs/vibewatch/config"
	"github.com/rodrigogs/vibewatch/internal/command"
	"github.com/rodrigogs/vibewatch/internal/event"
	"github.com/rodrigogs/vibewatch/internal/patterns"
)

// sweepInterval is how often pending events are checked for maturity while
// debouncing is enabled. With debouncing off nothing is ever pending, so the
// ticker is slowed to effectively never.
const (
	sweepInterval     = 50 * time.Millisecond
	idleSweepInterval = time.Hour
)

// Watcher owns the event loop and all state behind it. The pending-events
// map inside the coalescer is only ever touched from Run's goroutine.
type Watcher struct {
	root      string
	filter    *patterns.Filter
	coalescer *coalescer
	notifier  Notifier
	verbose   bool

	// dispatch is the command dispatcher's entry point; tests substitute a
	// recorder.
	dispatch func(path, relativePath string, kind event.Kind)
}

// New validates the watch root, compiles the pattern filter and assembles the
// pipeline. Any error here is a configuration error and fatal to startup.
func New(cfg *config.Config, notifier Notifier) (*Watcher, error) {
	root, err := canonicalRoot(cfg.Root)
	if err != nil {
		return nil, err
	}

	filter, err := patterns.New(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	dispatcher := command.NewDispatcher(root, cfg.Commands, cfg.Verbose)

	return &Watcher{
		root:      root,
		filter:    filter,
		coalescer: newCoalescer(time.Duration(cfg.DebounceMs) * time.Millisecond),
		notifier:  notifier,
		verbose:   cfg.Verbose,
		dispatch:  dispatcher.Dispatch,
	}, nil
}

func canonicalRoot(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve watch directory: %w", err)
	}
	// Resolve symlinks so notifier paths strip cleanly against the root.
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve watch directory: %w", err)
	}
	return canonical, nil
}

// Run subscribes to the notifier and loops until ctx is cancelled. Notifier
// errors are logged and survived; dispatched commands are never awaited.
func (w *Watcher) Run(ctx context.Context) error {
	events, errs, err := w.notifier.Subscribe(w.root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	defer w.notifier.Close()

	interval := sweepInterval
	if w.coalescer.window <= 0 {
		interval = idleSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("watching %s", w.root)
	if w.coalescer.window > 0 {
		log.Printf("debouncing enabled: %s", w.coalescer.window)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("shutting down")
			return nil
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("notifier event stream closed")
			}
			w.handleRaw(ev, time.Now())
		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("notifier error stream closed")
			}
			log.Printf("watch error: %v", err)
		case now := <-ticker.C:
			for _, matured := range w.coalescer.sweep(now) {
				w.handleMatured(matured)
			}
		}
	}
}

// handleRaw filters each affected path and either dispatches immediately or
// parks a single-path copy of the event in the coalescer. Paths outside the
// watch root are dropped silently.
func (w *Watcher) handleRaw(ev event.Raw, now time.Time) {
	for _, path := range ev.Paths {
		rel, ok := w.relativePath(path)
		if !ok {
			continue
		}
		if !w.filter.ShouldWatch(rel) {
			continue
		}

		if w.coalescer.window > 0 {
			if w.verbose {
				log.Printf("debouncing event for %s", path)
			}
			w.coalescer.add(event.Raw{Kind: ev.Kind, Paths: []string{path}}, now)
			continue
		}
		w.dispatch(path, rel, ev.Kind)
	}
}

func (w *Watcher) handleMatured(ev event.Raw) {
	for _, path := range ev.Paths {
		rel, ok := w.relativePath(path)
		if !ok {
			continue
		}
		w.dispatch(path, rel, ev.Kind)
	}
}

// relativePath strips the watch root; the second result is false for paths
// outside it.
func (w *Watcher) relativePath(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
