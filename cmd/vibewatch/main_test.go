package main

import (
	"errors"
	"flag"
	"reflect"
	"testing"
)

func TestParseArgs(t *testing.T) {
	t.Run("directory only", func(t *testing.T) {
		cfg, err := parseArgs([]string{"."})
		if err != nil {
			t.Fatalf("parseArgs: %v", err)
		}
		if cfg.Root != "." {
			t.Errorf("Root = %q, want %q", cfg.Root, ".")
		}
		if len(cfg.Include) != 0 || len(cfg.Exclude) != 0 {
			t.Errorf("patterns = %v / %v, want empty", cfg.Include, cfg.Exclude)
		}
		if cfg.Verbose {
			t.Error("Verbose = true, want false")
		}
	})

	t.Run("repeatable patterns", func(t *testing.T) {
		cfg, err := parseArgs([]string{
			"-include", "*.rs", "-include", "*.toml",
			"-exclude", "target/**", "-exclude", ".git/**",
			".",
		})
		if err != nil {
			t.Fatalf("parseArgs: %v", err)
		}
		if want := []string{"*.rs", "*.toml"}; !reflect.DeepEqual(cfg.Include, want) {
			t.Errorf("Include = %v, want %v", cfg.Include, want)
		}
		if want := []string{"target/**", ".git/**"}; !reflect.DeepEqual(cfg.Exclude, want) {
			t.Errorf("Exclude = %v, want %v", cfg.Exclude, want)
		}
	})

	t.Run("all options", func(t *testing.T) {
		cfg, err := parseArgs([]string{
			"-include", "*.rs",
			"-exclude", "target/**",
			"-debounce", "250",
			"-verbose",
			"-on-create", "git add {file_path}",
			"-on-modify", "cargo check",
			"-on-delete", "echo removed",
			"-on-change", "echo {event_type}: {relative_path}",
			"/tmp/watch",
		})
		if err != nil {
			t.Fatalf("parseArgs: %v", err)
		}
		if cfg.Root != "/tmp/watch" {
			t.Errorf("Root = %q", cfg.Root)
		}
		if cfg.DebounceMs != 250 {
			t.Errorf("DebounceMs = %d, want 250", cfg.DebounceMs)
		}
		if !cfg.Verbose {
			t.Error("Verbose = false, want true")
		}
		if cfg.Commands.OnCreate != "git add {file_path}" {
			t.Errorf("OnCreate = %q", cfg.Commands.OnCreate)
		}
		if cfg.Commands.OnModify != "cargo check" {
			t.Errorf("OnModify = %q", cfg.Commands.OnModify)
		}
		if cfg.Commands.OnDelete != "echo removed" {
			t.Errorf("OnDelete = %q", cfg.Commands.OnDelete)
		}
		if cfg.Commands.OnChange != "echo {event_type}: {relative_path}" {
			t.Errorf("OnChange = %q", cfg.Commands.OnChange)
		}
	})

	t.Run("no directory", func(t *testing.T) {
		if _, err := parseArgs([]string{"-verbose"}); err == nil {
			t.Fatal("expected error without directory argument")
		}
	})

	t.Run("too many directories", func(t *testing.T) {
		if _, err := parseArgs([]string{"a", "b"}); err == nil {
			t.Fatal("expected error with two directory arguments")
		}
	})

	t.Run("negative debounce rejected", func(t *testing.T) {
		if _, err := parseArgs([]string{"-debounce", "-5", "."}); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseArgs([]string{"-no-such-flag", "."})
		if err == nil {
			t.Fatal("expected parse error")
		}
		if errors.Is(err, flag.ErrHelp) {
			t.Error("unknown flag should not be reported as help")
		}
	})

	t.Run("help", func(t *testing.T) {
		if _, err := parseArgs([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
	})
}
