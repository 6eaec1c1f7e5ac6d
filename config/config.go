// Package config holds the startup configuration for vibewatch.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rodrigogs/vibewatch/internal/command"
)

// Config is the full configuration surface: watch root, pattern lists,
// debounce window and the optional command templates. It is populated once at
// startup and never reconfigured at runtime.
type Config struct {
	Root       string
	Include    []string
	Exclude    []string
	DebounceMs int
	Verbose    bool
	Commands   command.Config
}

// Default returns a Config seeded from environment variables where set.
func Default() *Config {
	debounceMs := 0
	if dbStr := os.Getenv("VIBEWATCH_DEBOUNCE_MS"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			debounceMs = db
		}
	}

	return &Config{
		DebounceMs: debounceMs,
	}
}

// Validate reports configuration errors that can be caught before touching
// the filesystem. Root existence is checked by the watcher itself.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("watch directory is required")
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce must be >= 0, got %d", c.DebounceMs)
	}
	return nil
}
