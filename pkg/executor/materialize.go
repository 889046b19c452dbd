package executor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/prompt"
	"github.com/arthur-debert/fastidious/pkg/template"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
)

// Outcome is the result of a file materialization together with the diff
// status that decided it
type Outcome struct {
	Result types.ActionResult
	Diff   types.DiffStatus
}

// RenderAndMaterialize renders src with vars and materializes the
// candidate over dest. The candidate is removed before returning.
func (e *Executor) RenderAndMaterialize(ctx context.Context, mode types.ExecutionMode, src *vfile.VirtualFile, dest string, vars types.Vars) (Outcome, error) {
	gen, err := template.Render(vars, src, template.Options{TempDir: e.tempDir})
	if err != nil {
		return Outcome{}, err
	}
	defer gen.Release()

	return e.Materialize(ctx, mode, gen, src, dest)
}

// Materialize compares gen with dest and, depending on the difference and
// on mode, writes it, reports it or asks the operator. src is the template
// gen was produced from; it is only written to by the interactive
// merge-into-template choice.
func (e *Executor) Materialize(ctx context.Context, mode types.ExecutionMode, gen *template.GenFile, src *vfile.VirtualFile, dest string) (Outcome, error) {
	dest, err := filepath.Abs(dest)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", dest)
	}

	if err := e.prober.CanWriteFile(dest); err != nil {
		return Outcome{}, err
	}

	status := e.differ.Diff(ctx, gen.Path(), dest)
	e.logger.Debug().
		Str("mode", mode.String()).
		Str("dest", dest).
		Str("diff", status.String()).
		Msg("materializing")

	f := fileAction{src: src.String(), gen: gen.Path(), dest: dest}
	out := Outcome{Diff: status}

	switch status.State {
	case types.DiffNoChanges:
		e.reporter.ReportTemplate(types.VerbNoChange, "update", f.src, f.gen, f.dest)
		out.Result = types.ResultAlreadyApplied
		return out, nil

	case types.DiffFailed:
		return out, diffError(status.Err, dest)

	case types.DiffUnsupported:
		return out, errors.Newf(errors.ErrNotAFile, "%s exists and is not a regular file", dest).
			WithDetail("path", dest)

	case types.DiffNewFile:
		out.Result, err = e.create(mode, f)
		return out, err

	case types.DiffChanged:
		out.Result, err = e.update(ctx, mode, f, status, src)
		return out, err

	default:
		return out, errors.Newf(errors.ErrInternal, "unknown diff state %q", status.State)
	}
}

type fileAction struct {
	src  string
	gen  string
	dest string
}

func diffError(cause error, dest string) error {
	if cause == nil {
		return errors.Newf(errors.ErrDiffFailed, "failed to compare %s", dest)
	}
	if errors.IsErrorCode(cause, errors.ErrCommandNotFound) || errors.IsErrorCode(cause, errors.ErrDiffFailed) {
		return cause
	}
	return errors.Wrapf(cause, errors.ErrDiffFailed, "failed to compare %s", dest)
}

func (e *Executor) create(mode types.ExecutionMode, f fileAction) (types.ActionResult, error) {
	parent := filepath.Dir(f.dest)

	switch mode {
	case types.ModeActive:
		if _, err := e.ensureDirs(mode, parent); err != nil {
			return "", err
		}
		e.reporter.ReportTemplate(types.VerbLive, "create", f.src, f.gen, f.dest)
		if err := copyFile(f.gen, f.dest); err != nil {
			return "", err
		}
		return types.ResultCreated, nil

	case types.ModeInteractive:
		ok, err := e.ensureDirs(mode, parent)
		if err != nil {
			return "", err
		}
		if !ok {
			return types.ResultSkipped, nil
		}
		yes, err := prompt.Confirm(e.prompter, fmt.Sprintf("create %s?", f.dest))
		if err != nil {
			return "", err
		}
		if !yes {
			e.reporter.ReportTemplate(types.VerbSkipped, "create", f.src, f.gen, f.dest)
			return types.ResultSkipped, nil
		}
		e.reporter.ReportTemplate(types.VerbLive, "create", f.src, f.gen, f.dest)
		if err := copyFile(f.gen, f.dest); err != nil {
			return "", err
		}
		return types.ResultCreated, nil

	default:
		if err := e.prober.CanCreateDir(parent); err != nil {
			return "", err
		}
		for _, dir := range e.prober.MissingDirs(parent) {
			e.reporter.ReportPath(types.VerbWould, "create directory", dir)
		}
		e.reporter.ReportTemplate(types.VerbWould, "create", f.src, f.gen, f.dest)
		return types.ResultSkipped, nil
	}
}

const updateMenu = "%s differs: [o]verwrite, [m]erge, [k]eep, [d]iff, merge into [t]emplate?"

func (e *Executor) update(ctx context.Context, mode types.ExecutionMode, f fileAction, status types.DiffStatus, src *vfile.VirtualFile) (types.ActionResult, error) {
	switch mode {
	case types.ModeActive:
		return e.overwrite(mode, f)

	case types.ModeInteractive:
		for {
			r, err := prompt.Choose(e.prompter, fmt.Sprintf(updateMenu, f.dest), "omkdt")
			if err != nil {
				return "", err
			}
			switch r {
			case 'o':
				return e.overwrite(mode, f)
			case 'm':
				e.reporter.ReportTemplate(types.VerbLive, "merge", f.src, f.gen, f.dest)
				if err := e.merge(ctx, f.gen, f.dest); err != nil {
					return "", err
				}
				return types.ResultApplied, nil
			case 'k':
				e.reporter.ReportTemplate(types.VerbSkipped, "update", f.src, f.gen, f.dest)
				return types.ResultSkipped, nil
			case 'd':
				e.reporter.ReportDiff(status.Text)
			case 't':
				if src.IsInMemory() {
					return "", errors.New(errors.ErrInvalidInput, "cannot merge into an inline template")
				}
				e.reporter.ReportPath(types.VerbLive, "merge into template", src.Path())
				if err := e.merge(ctx, f.dest, src.Path()); err != nil {
					return "", err
				}
				e.reporter.ReportTemplate(types.VerbSkipped, "update", f.src, f.gen, f.dest)
				return types.ResultSkipped, nil
			}
		}

	default:
		e.reporter.ReportTemplate(types.VerbWould, "update", f.src, f.gen, f.dest)
		e.reporter.ReportDiff(status.Text)
		return types.ResultSkipped, nil
	}
}

func (e *Executor) overwrite(mode types.ExecutionMode, f fileAction) (types.ActionResult, error) {
	ok, err := e.ensureDirs(mode, filepath.Dir(f.dest))
	if err != nil {
		return "", err
	}
	if !ok {
		return types.ResultSkipped, nil
	}
	e.reporter.ReportTemplate(types.VerbLive, "update", f.src, f.gen, f.dest)
	if err := copyFile(f.gen, f.dest); err != nil {
		return "", err
	}
	return types.ResultApplied, nil
}
