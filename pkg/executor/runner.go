package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/arthur-debert/fastidious/pkg/logging"
)

// Command is one process to spawn
type Command struct {
	Path string
	Args []string
	Env  []string
	Dir  string

	// Attach connects the process to the operator's terminal instead of
	// capturing its output. Used for merge tools.
	Attach bool
}

// Completion is what a finished process left behind
type Completion struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	// Signaled is set when the process ended without an exit status
	Signaled bool
}

// Runner spawns processes and blocks until they exit. An error means the
// process could not be started or waited for; a non-zero exit is not an
// error at this level.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Completion, error)
}

// OSRunner runs processes with os/exec
type OSRunner struct{}

// Run implements Runner
func (OSRunner) Run(ctx context.Context, c Command) (Completion, error) {
	logging.LogCommand(c.Path, c.Args)

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Env
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	if c.Attach {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	done := Completion{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return done, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		done.ExitCode = exitErr.ExitCode()
		if done.ExitCode < 0 {
			done.Signaled = true
		}
		return done, nil
	}
	return done, err
}
