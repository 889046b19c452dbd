// Package access answers "could the effective user do this?" questions
// about paths without performing the operation. Passive runs rely on it
// to predict whether an active run would succeed.
package access

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
)

// Mode is a set of access bits to probe for.
type Mode uint32

const (
	Read Mode = 1 << iota
	Write
	Exec
)

func (m Mode) String() string {
	s := ""
	for _, b := range []struct {
		bit Mode
		c   string
	}{{Read, "r"}, {Write, "w"}, {Exec, "x"}} {
		if m&b.bit != 0 {
			s += b.c
		} else {
			s += "-"
		}
	}
	return s
}

// Check reports whether the effective user has every access bit in mode
// on path. A false result with a nil error means permission is denied.
func Check(path string, mode Mode) (bool, error) {
	return checkAccess(path, mode)
}

// checkAccess is replaced in tests to simulate denials for any user
var checkAccess = probe

// Require is Check that turns a denial into an INSUFFICIENT_PRIVILEGES error.
func Require(op, path string, mode Mode) error {
	ok, err := Check(path, mode)
	if err != nil {
		return err
	}
	if !ok {
		return errors.InsufficientPrivileges(op, path)
	}
	return nil
}

// CanWriteFile reports whether path could be written: an existing file
// needs write permission, a missing one needs the nearest existing
// ancestor directory to be writable and searchable.
func CanWriteFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", path)
	}
	if _, err := os.Stat(abs); err == nil {
		return Require("write", abs, Write)
	}
	return CanCreateDir(filepath.Dir(abs))
}

// CanCreateDir reports whether entries could be created in dir. An existing
// dir must itself be writable and searchable; a missing one is checked by
// walking up to the first existing ancestor.
func CanCreateDir(dir string) error {
	logger := logging.GetLogger("access")

	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", dir)
	}

	current := abs
	for {
		info, err := os.Stat(current)
		if err == nil {
			if !info.IsDir() {
				return errors.Newf(errors.ErrNotAFile, "%s exists and is not a directory", current)
			}
			if current == abs {
				return Require("create entries in", abs, Write|Exec)
			}
			logger.Trace().Str("ancestor", current).Str("target", abs).Msg("probing ancestor")
			return Require("create directory in", current, Write|Exec)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return errors.PathNotFound(abs)
		}
		current = parent
	}
}

// MissingDirs lists the directories that would have to be created for dir
// to exist, outermost first.
func MissingDirs(dir string) []string {
	var missing []string
	current := filepath.Clean(dir)
	for {
		if _, err := os.Stat(current); err == nil {
			break
		}
		missing = append([]string{current}, missing...)
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return missing
}
