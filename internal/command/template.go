package command

import (
	"path/filepath"
	"strings"

	"github.com/rodrigogs/vibewatch/internal/event"
)

// templateContext carries the per-event facts available to command templates.
// One is built per dispatched event and discarded after substitution.
type templateContext struct {
	filePath     string
	relativePath string
	eventType    string
	absolutePath string
}

func newTemplateContext(filePath, relativePath string, kind event.Kind, watchRoot string) *templateContext {
	return &templateContext{
		filePath:     normalizePath(filePath),
		relativePath: normalizePath(relativePath),
		eventType:    kind.TemplateType(),
		absolutePath: normalizePath(filepath.Join(watchRoot, relativePath)),
	}
}

// normalizePath converts platform separators to forward slashes. Paths
// without backslashes are returned as-is to avoid the allocation.
func normalizePath(path string) string {
	if !strings.ContainsRune(path, '\\') {
		return path
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// substitute replaces {file_path}, {relative_path}, {event_type} and
// {absolute_path} in template with the context values. Unknown placeholders
// are kept verbatim, braces included; an opening brace with no later closing
// brace is kept as a literal. One left-to-right pass, no re-scanning.
func (c *templateContext) substitute(template string) string {
	var out strings.Builder
	out.Grow(len(template) + 128)

	last := 0
	for i := 0; i < len(template); {
		if template[i] != '{' {
			i++
			continue
		}

		out.WriteString(template[last:i])

		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			// Malformed: no closing brace ahead. Keep the '{' literally.
			out.WriteByte('{')
			i++
			last = i
			continue
		}
		end += i

		switch name := template[i+1 : end]; name {
		case "file_path":
			out.WriteString(c.filePath)
		case "relative_path":
			out.WriteString(c.relativePath)
		case "event_type":
			out.WriteString(c.eventType)
		case "absolute_path":
			out.WriteString(c.absolutePath)
		default:
			out.WriteByte('{')
			out.WriteString(name)
			out.WriteByte('}')
		}

		i = end + 1
		last = i
	}

	out.WriteString(template[last:])
	return out.String()
}
