package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/prompt"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/kballard/go-shellquote"
)

// ensureDirs creates the missing directories leading to dir. Interactive
// mode asks once per level; a refusal stops there and returns false.
func (e *Executor) ensureDirs(mode types.ExecutionMode, dir string) (bool, error) {
	for _, d := range e.prober.MissingDirs(dir) {
		if mode == types.ModeInteractive {
			yes, err := prompt.Confirm(e.prompter, fmt.Sprintf("create directory %s?", d))
			if err != nil {
				return false, err
			}
			if !yes {
				e.reporter.ReportPath(types.VerbSkipped, "create directory", d)
				return false, nil
			}
		}

		e.reporter.ReportPath(types.VerbLive, "create directory", d)
		if err := os.Mkdir(d, 0755); err != nil && !os.IsExist(err) {
			return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", d).
				WithDetail("path", d)
		}
	}
	return true, nil
}

// copyFile writes src over dest in place. An existing dest keeps its mode.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.CopyFailed(src, dest, err)
	}
	defer func() { _ = in.Close() }()

	perm := os.FileMode(0644)
	if info, err := os.Stat(dest); err == nil {
		perm = info.Mode().Perm()
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.CopyFailed(src, dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.CopyFailed(src, dest, err)
	}
	if err := out.Close(); err != nil {
		return errors.CopyFailed(src, dest, err)
	}
	return nil
}

// merge opens the merge tool on two files, attached to the terminal
func (e *Executor) merge(ctx context.Context, left, right string) error {
	path, err := exec.LookPath(e.mergeTool)
	if err != nil {
		return errors.CommandNotFound(e.mergeTool, err)
	}

	args := append(append([]string{}, e.mergeArgs...), left, right)
	display := shellquote.Join(append([]string{e.mergeTool}, args...)...)

	done, err := e.runner.Run(ctx, Command{Path: path, Args: args, Dir: e.workDir, Attach: true})
	if err != nil {
		return errors.Wrapf(err, errors.ErrExec, "failed to run %s", display)
	}
	if done.Signaled {
		return errors.CmdExitedPrematurely(display)
	}
	if done.ExitCode != 0 {
		return errors.NotZeroExit(display, done.ExitCode)
	}
	return nil
}
