package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/prompt"
	"github.com/arthur-debert/fastidious/pkg/template"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/kballard/go-shellquote"
)

// Run executes argv according to mode. Placeholders in the arguments and in
// the variable values are resolved against vars before anything happens,
// so a Passive run reports the exact command line an Active run would
// spawn.
func (e *Executor) Run(ctx context.Context, mode types.ExecutionMode, argv []string, vars types.Vars) (types.ActionResult, error) {
	if len(argv) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "no command given")
	}

	args, err := substituteAll(vars, argv)
	if err != nil {
		return "", err
	}
	return e.runResolved(ctx, mode, args, shellquote.Join(args...), vars)
}

// RunScript materializes script as an executable and runs it according to
// mode. The materialized file only lives for the duration of the call.
func (e *Executor) RunScript(ctx context.Context, mode types.ExecutionMode, script *vfile.VirtualFile, vars types.Vars) (types.ActionResult, error) {
	h, err := script.AsExecutable(e.vfileOptions()...)
	if err != nil {
		return "", err
	}
	defer h.Release()

	return e.runResolved(ctx, mode, []string{h.Path()}, scriptCommandLine(script), vars)
}

// scriptCommandLine is how a script is announced: its path, or the full
// text of an inline script
func scriptCommandLine(script *vfile.VirtualFile) string {
	if script.IsInMemory() {
		return strings.TrimRight(script.Content(), "\n")
	}
	return script.Path()
}

// Check runs script for real to learn its exit status and reports whether
// it exited 0. It never prompts and its output only reaches the log. A
// script that could not be materialized is an error; one that fails to
// start or exits non-zero is simply false.
func (e *Executor) Check(ctx context.Context, script *vfile.VirtualFile, vars types.Vars) (bool, error) {
	h, err := script.AsExecutable(e.vfileOptions()...)
	if err != nil {
		return false, err
	}
	defer h.Release()

	env, err := e.environ(vars)
	if err != nil {
		return false, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	done, err := e.runner.Run(ctx, Command{Path: h.Path(), Env: env, Dir: e.workDir})
	logger := e.logger.With().Str("script", script.String()).Logger()
	if err != nil {
		logger.Debug().Err(err).Msg("check script failed to run")
		return false, nil
	}
	if len(done.Stdout) > 0 {
		logger.Debug().Str("stdout", strings.TrimRight(string(done.Stdout), "\n")).Msg("check script output")
	}
	logger.Debug().Int("exit_code", done.ExitCode).Bool("signaled", done.Signaled).Msg("check script finished")

	return !done.Signaled && done.ExitCode == 0, nil
}

func (e *Executor) runResolved(ctx context.Context, mode types.ExecutionMode, args []string, display string, vars types.Vars) (types.ActionResult, error) {
	path, err := exec.LookPath(args[0])
	if err != nil {
		return "", errors.CommandNotFound(args[0], err)
	}

	e.logger.Debug().
		Str("mode", mode.String()).
		Str("command", display).
		Str("path", path).
		Msg("dispatching command")

	switch mode {
	case types.ModeActive:
		return e.spawn(ctx, path, args, display, vars)

	case types.ModeInteractive:
		r, err := prompt.Choose(e.prompter, fmt.Sprintf("run %s? [y/n]", display), "yn")
		if err != nil {
			return "", err
		}
		if r == 'n' {
			e.reporter.ReportCommand(types.VerbSkipped, "run", display)
			return types.ResultSkipped, nil
		}
		return e.spawn(ctx, path, args, display, vars)

	default:
		e.reporter.ReportCommand(types.VerbWould, "run", display)
		return types.ResultSkipped, nil
	}
}

func (e *Executor) spawn(ctx context.Context, path string, args []string, display string, vars types.Vars) (types.ActionResult, error) {
	env, err := e.environ(vars)
	if err != nil {
		return "", err
	}

	e.reporter.ReportCommand(types.VerbLive, "run", display)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	done, err := e.runner.Run(ctx, Command{Path: path, Args: args[1:], Env: env, Dir: e.workDir})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrExec, "failed to run %s", display).WithDetail("command", display)
	}

	if len(done.Stdout) > 0 {
		if _, err := e.stdout.Write(done.Stdout); err != nil {
			e.logger.Warn().Err(err).Msg("failed to echo command output")
		}
	}

	if done.Signaled {
		return "", errors.CmdExitedPrematurely(display)
	}
	if done.ExitCode != 0 {
		return "", errors.NotZeroExit(display, done.ExitCode).WithDetail("stderr", string(done.Stderr))
	}
	return types.ResultApplied, nil
}

// environ is the process environment with vars layered on top. Values go
// through the same placeholder substitution as arguments.
func (e *Executor) environ(vars types.Vars) ([]string, error) {
	env := os.Environ()
	for _, key := range vars.Keys() {
		value, err := template.Substitute(vars, vars[key])
		if err != nil {
			return nil, err
		}
		env = append(env, key+"="+value)
	}
	return env, nil
}

func substituteAll(vars types.Vars, in []string) ([]string, error) {
	out := make([]string, len(in))
	for i, s := range in {
		resolved, err := template.Substitute(vars, s)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}
