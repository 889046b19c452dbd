// Package vfile implements VirtualFile, a script or content source that is
// either a path on disk or literal text held in memory.
//
// Consumers never care which variant they hold: they ask for an executable
// or a readable path and get back a Handle. In-memory content is written to
// a uniquely named temporary file that belongs to the Handle and is removed
// by Handle.Release on every exit path:
//
//	h, err := vf.AsExecutable()
//	if err != nil {
//		return err
//	}
//	defer h.Release()
//	run(h.Path())
package vfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/access"
	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
)

const (
	// DefaultShebang is prepended to in-memory scripts without one
	DefaultShebang = "#!/bin/sh"

	executablePattern = "fastidious-*.sh"
	readablePattern   = "fastidious-*.txt"
)

// VirtualFile is immutable once constructed.
type VirtualFile struct {
	path     string
	content  string
	inMemory bool
}

// FromPath returns a VirtualFile backed by an existing file
func FromPath(path string) *VirtualFile {
	return &VirtualFile{path: path}
}

// InMemory returns a VirtualFile holding literal content
func InMemory(content string) *VirtualFile {
	return &VirtualFile{content: content, inMemory: true}
}

// IsInMemory reports whether the content is held in memory
func (v *VirtualFile) IsInMemory() bool {
	return v.inMemory
}

// Path returns the backing path, empty for in-memory content
func (v *VirtualFile) Path() string {
	return v.path
}

// Content returns the in-memory content, empty for path-backed files
func (v *VirtualFile) Content() string {
	return v.content
}

// String describes the file for announcements and logs
func (v *VirtualFile) String() string {
	if !v.inMemory {
		return v.path
	}
	first, _, more := strings.Cut(strings.TrimSpace(v.content), "\n")
	if more {
		return fmt.Sprintf("<inline: %s ...>", first)
	}
	return fmt.Sprintf("<inline: %s>", first)
}

// ReadAll returns the file's bytes without materializing it
func (v *VirtualFile) ReadAll() ([]byte, error) {
	if v.inMemory {
		return []byte(v.content), nil
	}
	if err := checkPath(v.path, access.Read, "read"); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(v.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", v.path).
			WithDetail("path", v.path)
	}
	return data, nil
}

// Option configures a materialization
type Option func(*options)

type options struct {
	tempDir string
	shebang string
}

// WithTempDir places temporary files in dir instead of the system temp directory
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithShebang overrides the interpreter line written in front of in-memory scripts
func WithShebang(shebang string) Option {
	return func(o *options) {
		if shebang != "" {
			o.shebang = shebang
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{shebang: DefaultShebang}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AsExecutable returns a handle on a path that exists, is executable and can
// be spawned directly.
func (v *VirtualFile) AsExecutable(opts ...Option) (*Handle, error) {
	o := buildOptions(opts)
	if !v.inMemory {
		if err := checkPath(v.path, access.Exec, "execute"); err != nil {
			return nil, err
		}
		return pathHandle(v.path)
	}

	content := v.content
	if !strings.HasPrefix(content, "#!") {
		content = o.shebang + "\n" + content
	}
	return WriteTemp(o.tempDir, executablePattern, 0700, func(f *os.File) error {
		_, err := f.WriteString(content)
		return err
	})
}

// AsReadable returns a handle on a path that exists and can be read.
// In-memory content is written verbatim, without a shebang or execute bit.
func (v *VirtualFile) AsReadable(opts ...Option) (*Handle, error) {
	o := buildOptions(opts)
	if !v.inMemory {
		if err := checkPath(v.path, access.Read, "read"); err != nil {
			return nil, err
		}
		return pathHandle(v.path)
	}

	return WriteTemp(o.tempDir, readablePattern, 0600, func(f *os.File) error {
		_, err := f.WriteString(v.content)
		return err
	})
}

func checkPath(path string, mode access.Mode, op string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.PathNotFound(path)
		}
		return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", path).WithDetail("path", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrNotAFile, "%s is a directory", path).WithDetail("path", path)
	}
	return access.Require(op, path, mode)
}

func pathHandle(path string) (*Handle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", path)
	}
	return &Handle{path: abs, logger: logging.GetLogger("vfile")}, nil
}
