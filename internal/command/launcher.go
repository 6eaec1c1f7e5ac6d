package command

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/google/shlex"
)

// launchFunc is the command-launcher collaborator: it tokenizes a finished
// command line, spawns it and returns the captured output. Tests swap in a
// recorder.
type launchFunc func(cmdline string) (stdout, stderr []byte, err error)

// runShell tokenizes cmdline with shell-style quoting rules and runs it,
// capturing stdout and stderr. A non-zero exit is reported as an error.
func runShell(cmdline string) ([]byte, []byte, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, nil, fmt.Errorf("parse command: %w", err)
	}
	if len(argv) == 0 {
		return nil, nil, fmt.Errorf("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("run command: %w", err)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}
