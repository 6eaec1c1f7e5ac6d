package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rodrigogs/vibewatch/config"
	"github.com/rodrigogs/vibewatch/internal/watcher"
)

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `vibewatch watches a directory and runs commands when files change.

Usage: vibewatch [flags] DIRECTORY

Command templates may reference {file_path}, {relative_path}, {absolute_path}
and {event_type}.

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func parseArgs(args []string) (*config.Config, error) {
	cfg := config.Default()

	fs := flag.NewFlagSet("vibewatch", flag.ContinueOnError)
	// Errors are reported once, by main; keep the FlagSet from printing its
	// own copy first.
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.Func("include", "only watch files matching this glob pattern (repeatable)", func(s string) error {
		cfg.Include = append(cfg.Include, s)
		return nil
	})
	fs.Func("exclude", "ignore files matching this glob pattern (repeatable)", func(s string) error {
		cfg.Exclude = append(cfg.Exclude, s)
		return nil
	})
	fs.IntVar(&cfg.DebounceMs, "debounce", cfg.DebounceMs, "debounce window in milliseconds, 0 disables")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "log debug detail about events and matching")
	fs.StringVar(&cfg.Commands.OnCreate, "on-create", "", "command to run when files are created")
	fs.StringVar(&cfg.Commands.OnModify, "on-modify", "", "command to run when files are modified")
	fs.StringVar(&cfg.Commands.OnDelete, "on-delete", "", "command to run when files are deleted")
	fs.StringVar(&cfg.Commands.OnChange, "on-change", "", "fallback command to run on any file event")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(os.Stdout, fs)
		}
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one directory argument, got %d", fs.NArg())
	}
	cfg.Root = fs.Arg(0)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	log.SetFlags(log.Ltime)

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("usage error: %v (run with -h for usage)", err)
	}

	notifier, err := watcher.NewFSNotifier()
	if err != nil {
		log.Fatalf("failed to create file watcher: %v", err)
	}

	w, err := watcher.New(cfg, notifier)
	if err != nil {
		log.Fatalf("failed to start file watcher: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		log.Fatalf("watcher stopped: %v", err)
	}
}
