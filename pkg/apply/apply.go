// Package apply implements idempotent actions: a check script decides
// whether an apply script needs to run at all.
//
// The check script is always run for real, whatever mode the caller asked
// for, because only its exit status can tell whether the action is
// applied. It is expected to have no side effects. Its output goes to the
// debug log. Nothing about past runs is stored; every call re-runs the
// check.
package apply

import (
	"context"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/rs/zerolog"
)

// Request describes one apply action
type Request struct {
	// Check exits 0 when the action is already applied. Without a check
	// the script always runs.
	Check *vfile.VirtualFile
	// Script performs the action
	Script *vfile.VirtualFile
	Vars   types.Vars
	Mode   types.ExecutionMode
}

// Applier composes the executor into check-then-apply actions
type Applier struct {
	exec   *executor.Executor
	logger zerolog.Logger
}

// New creates an Applier running scripts through exec
func New(exec *executor.Executor) *Applier {
	return &Applier{
		exec:   exec,
		logger: logging.GetLogger("apply"),
	}
}

// IsApplied runs check and reports whether it exited 0
func (a *Applier) IsApplied(ctx context.Context, check *vfile.VirtualFile, vars types.Vars) (bool, error) {
	if check == nil {
		return false, errors.New(errors.ErrInvalidInput, "no check script given")
	}

	applied, err := a.exec.Check(ctx, check, vars)
	if err != nil {
		return false, err
	}
	a.logger.Info().
		Str("check", check.String()).
		Bool("applied", applied).
		Msg("evaluated check script")
	return applied, nil
}

// Apply runs req.Script under req.Mode unless req.Check says the action is
// already applied. The result is not verified by re-running the check.
func (a *Applier) Apply(ctx context.Context, req Request) (types.ActionResult, error) {
	if req.Script == nil {
		return "", errors.New(errors.ErrInvalidInput, "no apply script given")
	}

	if req.Check != nil {
		applied, err := a.IsApplied(ctx, req.Check, req.Vars)
		if err != nil {
			return "", err
		}
		if applied {
			a.exec.Reporter().ReportCommand(types.VerbNoChange, "apply", req.Script.String())
			return types.ResultAlreadyApplied, nil
		}
	}

	return a.exec.RunScript(ctx, req.Mode, req.Script, req.Vars)
}
