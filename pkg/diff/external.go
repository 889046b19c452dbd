package diff

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/kballard/go-shellquote"
)

// External runs a diff(1)-compatible tool as `Tool Args... candidate dest`.
// Exit status 0 means identical, 1 means different, anything else is a
// failure.
type External struct {
	Tool string
	Args []string
}

// Compare implements Comparator
func (x External) Compare(ctx context.Context, candidate, dest string) (bool, []byte, error) {
	path, err := exec.LookPath(x.Tool)
	if err != nil {
		return false, nil, errors.CommandNotFound(x.Tool, err)
	}

	args := append(append([]string{}, x.Args...), candidate, dest)
	logging.LogCommand(path, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return false, nil, nil
	}

	cmdline := shellquote.Join(append([]string{x.Tool}, args...)...)
	if exitErr, ok := err.(*exec.ExitError); ok {
		switch code := exitErr.ExitCode(); code {
		case 1:
			return true, stdout.Bytes(), nil
		case -1:
			return false, nil, errors.Wrap(errors.CmdExitedPrematurely(cmdline), errors.ErrDiffFailed, "diff tool was terminated")
		default:
			return false, nil, errors.Newf(errors.ErrDiffFailed, "diff tool exited with status %d", code).
				WithDetail("exit_code", code).
				WithDetail("command", cmdline).
				WithDetail("stderr", stderr.String())
		}
	}
	return false, nil, errors.Wrapf(err, errors.ErrDiffFailed, "failed to run %s", cmdline)
}
