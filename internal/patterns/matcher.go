// Package patterns decides which paths are watched, using glob include and
// exclude lists with brace expansion.
package patterns

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Filter holds the compiled include and exclude patterns. It is built once at
// startup and never mutated afterwards.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// CompileError reports a pattern that failed to compile, naming the list it
// came from. Pattern compilation failures are fatal to startup.
type CompileError struct {
	List    string // "include" or "exclude"
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.List, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// ExpandBraces rewrites "prefix{a,b,c}suffix" into one pattern per
// alternative. Only the first '{' and first '}' are considered; if either is
// missing, or '}' comes before '{', the pattern is returned unchanged as a
// single-element list.
func ExpandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	end := strings.IndexByte(pattern, '}')
	if start < 0 || end < 0 || end < start {
		return []string{pattern}
	}

	prefix := pattern[:start]
	suffix := pattern[end+1:]
	alts := strings.Split(pattern[start+1:end], ",")

	expanded := make([]string, 0, len(alts))
	for _, alt := range alts {
		expanded = append(expanded, prefix+strings.TrimSpace(alt)+suffix)
	}
	return expanded
}

// New compiles the include and exclude pattern lists, expanding brace syntax
// first. The first pattern that fails to compile is reported as a
// *CompileError.
func New(include, exclude []string) (*Filter, error) {
	inc, err := compileList("include", include)
	if err != nil {
		return nil, err
	}
	exc, err := compileList("exclude", exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compileList(list string, patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		for _, expanded := range ExpandBraces(pattern) {
			// Normalize pattern: use forward slashes
			expanded = filepath.ToSlash(expanded)

			g, err := glob.Compile(expanded)
			if err != nil {
				return nil, &CompileError{List: list, Pattern: expanded, Err: err}
			}
			compiled = append(compiled, g)
		}
	}
	return compiled, nil
}

// ShouldWatch reports whether events for path should be handled. Exclude
// patterns always win; with no include patterns every non-excluded path is
// watched.
func (f *Filter) ShouldWatch(path string) bool {
	normalized := filepath.ToSlash(path)

	if matchesAny(f.exclude, normalized) {
		return false
	}

	if len(f.include) > 0 {
		return matchesAny(f.include, normalized)
	}

	return true
}

func matchesAny(patterns []glob.Glob, path string) bool {
	for _, pattern := range patterns {
		if pattern.Match(path) {
			return true
		}
	}
	return false
}
