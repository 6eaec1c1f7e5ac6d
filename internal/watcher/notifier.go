package watcher

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/rodrigogs/vibewatch/internal/event"
)

// Notifier abstracts the OS file change notification mechanism. Subscribe
// delivers raw events for root and everything under it until Close.
type Notifier interface {
	Subscribe(root string) (<-chan event.Raw, <-chan error, error)
	Close() error
}

// fsNotifier is the fsnotify-backed Notifier. fsnotify watches are not
// recursive, so Subscribe registers every directory under the root and new
// directories are registered as their create events arrive.
type fsNotifier struct {
	fsw    *fsnotify.Watcher
	events chan event.Raw
	errors chan error
	done   chan struct{}
}

func NewFSNotifier() (Notifier, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &fsNotifier{
		fsw:    fsw,
		events: make(chan event.Raw, 1000),
		errors: make(chan error, 10),
		done:   make(chan struct{}),
	}, nil
}

func (n *fsNotifier) Subscribe(root string) (<-chan event.Raw, <-chan error, error) {
	if err := n.addRecursive(root); err != nil {
		return nil, nil, err
	}
	go n.translate()
	return n.events, n.errors, nil
}

func (n *fsNotifier) Close() error {
	close(n.done)
	return n.fsw.Close()
}

// addRecursive registers dir and every directory below it. Unreadable
// subdirectories are skipped rather than aborting the walk.
func (n *fsNotifier) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Printf("skipping unreadable path %s: %v", path, err)
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if err := n.fsw.Add(path); err != nil {
			log.Printf("error adding directory %s: %v", path, err)
		}
		return nil
	})
}

func (n *fsNotifier) translate() {
	for {
		select {
		case fsEvent, ok := <-n.fsw.Events:
			if !ok {
				return
			}
			if fsEvent.Has(fsnotify.Create) {
				n.maybeAddDir(fsEvent.Name)
			}
			select {
			case n.events <- translateEvent(fsEvent):
			case <-n.done:
				return
			default:
				log.Printf("event channel full, dropping event: %s", fsEvent.Name)
			}
		case err, ok := <-n.fsw.Errors:
			if !ok {
				return
			}
			if !n.forwardError(err) {
				return
			}
		case <-n.done:
			return
		}
	}
}

// forwardError hands a notifier error to the subscriber, dropping it with a
// log line when the channel is full. Returns false once the notifier is
// closed.
func (n *fsNotifier) forwardError(err error) bool {
	select {
	case n.errors <- err:
	case <-n.done:
		return false
	default:
		log.Printf("error channel full, dropping error: %v", err)
	}
	return true
}

// maybeAddDir extends the watch to directories created after startup.
func (n *fsNotifier) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := n.fsw.Add(path); err != nil {
		log.Printf("error adding directory %s: %v", path, err)
	}
}

// translateEvent maps an fsnotify op onto the event model. Rename is a
// name-class modification (the dispatcher decides later whether it was really
// a deletion) and chmod-class notifications are lumped into Modify/Other.
func translateEvent(fsEvent fsnotify.Event) event.Raw {
	var kind event.Kind
	switch {
	case fsEvent.Has(fsnotify.Create):
		kind = event.Kind{Op: event.Create}
	case fsEvent.Has(fsnotify.Write):
		kind = event.Kind{Op: event.Modify, Modify: event.ModifyData}
	case fsEvent.Has(fsnotify.Rename):
		kind = event.Kind{Op: event.Modify, Modify: event.ModifyName}
	case fsEvent.Has(fsnotify.Remove):
		kind = event.Kind{Op: event.Remove}
	case fsEvent.Has(fsnotify.Chmod):
		kind = event.Kind{Op: event.Modify, Modify: event.ModifyOther}
	default:
		kind = event.Kind{Op: event.Other}
	}
	return event.Raw{Kind: kind, Paths: []string{fsEvent.Name}}
}
