//go:build unix

package access

import (
	"os"

	"golang.org/x/sys/unix"
)

func probe(path string, mode Mode) (bool, error) {
	var bits uint32
	if mode&Read != 0 {
		bits |= unix.R_OK
	}
	if mode&Write != 0 {
		bits |= unix.W_OK
	}
	if mode&Exec != 0 {
		bits |= unix.X_OK
	}

	err := unix.Faccessat(unix.AT_FDCWD, path, bits, unix.AT_EACCESS)
	switch err {
	case nil:
		return true, nil
	case unix.EACCES, unix.EPERM, unix.EROFS:
		return false, nil
	default:
		return false, &os.PathError{Op: "faccessat", Path: path, Err: err}
	}
}
