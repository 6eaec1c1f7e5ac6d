package command

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/rodrigogs/vibewatch/internal/event"
)

// Dispatcher resolves and launches the configured command for each event.
// Commands run in their own goroutines; the dispatcher never blocks on them
// and their completion is observed only through the log.
type Dispatcher struct {
	watchRoot string
	config    Config
	launch    launchFunc
	verbose   bool
}

func NewDispatcher(watchRoot string, config Config, verbose bool) *Dispatcher {
	return &Dispatcher{
		watchRoot: watchRoot,
		config:    config,
		launch:    runShell,
		verbose:   verbose,
	}
}

var eventLabel = map[event.Op]func(format string, a ...interface{}) string{
	event.Create: color.GreenString,
	event.Modify: color.YellowString,
	event.Remove: color.RedString,
	event.Other:  color.CyanString,
}

// Dispatch handles one qualifying event for one path: reclassify, resolve the
// command, substitute placeholders and launch. Missing configuration is a
// no-op; launch failures are logged and contained to this event.
func (d *Dispatcher) Dispatch(path, relativePath string, kind event.Kind) {
	kind = d.reclassify(path, kind)

	eventType := kind.TemplateType()
	fmt.Printf("%s: %s\n", eventLabel[kind.Op](eventType), relativePath)

	template, ok := d.config.CommandFor(kind)
	if !ok {
		return
	}

	ctx := newTemplateContext(path, relativePath, kind, d.watchRoot)
	cmdline := ctx.substitute(template)

	log.Printf("executing: %s", cmdline)
	go d.run(cmdline)
}

func (d *Dispatcher) run(cmdline string) {
	stdout, stderr, err := d.launch(cmdline)
	if err != nil {
		log.Printf("command %q failed: %v", cmdline, err)
	} else if d.verbose {
		log.Printf("command %q finished", cmdline)
	}
	if d.verbose && len(stdout) > 0 {
		log.Printf("command stdout: %s", stdout)
	}
	if len(stderr) > 0 {
		log.Printf("command stderr: %s", stderr)
	}
}

// reclassify treats a rename-class modification whose path no longer exists
// as a removal; some editors and GUIs signal deletion as a rename-away. The
// stat here races with recreation of the file, which is accepted: the event
// is classified by what is on disk at handling time.
func (d *Dispatcher) reclassify(path string, kind event.Kind) event.Kind {
	if kind.Op == event.Modify && kind.Modify == event.ModifyName {
		if _, err := os.Stat(path); err != nil {
			return event.Kind{Op: event.Remove}
		}
	}
	return kind
}
