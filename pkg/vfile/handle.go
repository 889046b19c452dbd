package vfile

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/rs/zerolog"
)

// Handle is a materialized VirtualFile. When it owns a temporary file,
// Release removes it; releasing twice is a no-op.
type Handle struct {
	path     string
	temp     bool
	released bool
	logger   zerolog.Logger
}

// Path returns the materialized path
func (h *Handle) Path() string {
	return h.path
}

// IsTemp reports whether the handle owns a temporary file
func (h *Handle) IsTemp() bool {
	return h.temp
}

// Release removes the owned temporary file. Failures are logged and never
// returned so they cannot mask the consumer's own result.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	if !h.temp {
		return
	}
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn().Err(err).Str("path", h.path).Msg("failed to remove temporary file")
		return
	}
	h.logger.Trace().Str("path", h.path).Msg("removed temporary file")
}

// WriteTemp creates a temporary file in dir (the system temp directory when
// empty) named after pattern, fills it with write and sets perm. The file
// is removed again if any step fails. Coded errors returned by write are
// passed through unchanged.
func WriteTemp(dir, pattern string, perm os.FileMode, write func(f *os.File) error) (*Handle, error) {
	logger := logging.GetLogger("vfile")

	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to create temporary file in %q", dir)
	}

	h := &Handle{path: f.Name(), temp: true, logger: logger}
	fail := func(err error, code errors.ErrorCode, msg string) (*Handle, error) {
		_ = f.Close()
		h.Release()
		return nil, errors.Wrap(err, code, msg).WithDetail("path", h.path)
	}

	if err := write(f); err != nil {
		if coded, ok := err.(*errors.Error); ok {
			_ = f.Close()
			h.Release()
			return nil, coded
		}
		return fail(err, errors.ErrFileWrite, "failed to write temporary file")
	}
	if err := f.Chmod(perm); err != nil {
		return fail(err, errors.ErrFileWrite, "failed to set permissions on temporary file")
	}
	if err := f.Close(); err != nil {
		h.Release()
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to close temporary file").WithDetail("path", h.path)
	}

	if resolved, err := filepath.EvalSymlinks(h.path); err == nil {
		h.path = resolved
	}
	if abs, err := filepath.Abs(h.path); err == nil {
		h.path = abs
	}

	logger.Trace().Str("path", h.path).Msg("created temporary file")
	return h, nil
}
