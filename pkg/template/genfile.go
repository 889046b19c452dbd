package template

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/kballard/go-shellquote"
)

const genPattern = "fastidious-*.gen"

// GenFile is a freshly rendered candidate. It owns its temporary file for
// one render-compare-apply cycle; callers must Release it.
type GenFile struct {
	*vfile.Handle
}

// Bytes returns the rendered content
func (g *GenFile) Bytes() ([]byte, error) {
	data, err := os.ReadFile(g.Path())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", g.Path())
	}
	return data, nil
}

// Options configures rendering
type Options struct {
	// TempDir holds generated files; the system temp directory when empty
	TempDir string
}

// Render renders src into a new GenFile. On error no GenFile is returned
// and the partial candidate is removed.
func Render(vars types.Vars, src *vfile.VirtualFile, opts Options) (*GenFile, error) {
	logger := logging.GetLogger("template")

	in, err := src.AsReadable(vfile.WithTempDir(opts.TempDir))
	if err != nil {
		return nil, err
	}
	defer in.Release()

	f, err := os.Open(in.Path())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to open template %s", src).
			WithDetail("path", in.Path())
	}
	defer func() { _ = f.Close() }()

	h, err := vfile.WriteTemp(opts.TempDir, genPattern, 0600, func(out *os.File) error {
		return RenderTo(vars, f, out)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", src.String()).
		Str("generated", h.Path()).
		Msg("rendered template")
	return &GenFile{Handle: h}, nil
}

// RenderFiltered produces a GenFile by piping src through an external
// command. Placeholders in argv are resolved against vars first.
func RenderFiltered(ctx context.Context, vars types.Vars, src *vfile.VirtualFile, argv []string, opts Options) (*GenFile, error) {
	logger := logging.GetLogger("template")

	if len(argv) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "filter command is empty")
	}

	args := make([]string, len(argv))
	for i, arg := range argv {
		resolved, err := Substitute(vars, arg)
		if err != nil {
			return nil, err
		}
		args[i] = resolved
	}

	path, err := exec.LookPath(args[0])
	if err != nil {
		return nil, errors.CommandNotFound(args[0], err)
	}

	input, err := src.ReadAll()
	if err != nil {
		return nil, err
	}

	cmdline := shellquote.Join(args...)
	logging.LogCommand(path, args[1:])

	var stderr bytes.Buffer
	h, err := vfile.WriteTemp(opts.TempDir, genPattern, 0600, func(out *os.File) error {
		cmd := exec.CommandContext(ctx, path, args[1:]...)
		cmd.Stdin = bytes.NewReader(input)
		cmd.Stdout = out
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				if code := exitErr.ExitCode(); code >= 0 {
					return errors.NotZeroExit(cmdline, code).WithDetail("stderr", stderr.String())
				}
				return errors.CmdExitedPrematurely(cmdline)
			}
			return errors.Wrapf(err, errors.ErrExec, "failed to run filter %s", cmdline)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", src.String()).
		Str("filter", cmdline).
		Str("generated", h.Path()).
		Msg("rendered filtered file")
	return &GenFile{Handle: h}, nil
}
