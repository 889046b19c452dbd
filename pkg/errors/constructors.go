package errors

import "fmt"

// Constructors for the errors raised by the executor. They keep the message
// wording and the detail keys consistent across packages.

// VarNotFound reports a template placeholder with no matching variable
func VarNotFound(key string) *Error {
	return Newf(ErrVarNotFound, "variable not found: %s", key).
		WithDetail("key", key)
}

// NotZeroExit reports a process that exited with a non-zero status
func NotZeroExit(command string, code int) *Error {
	return Newf(ErrNotZeroExit, "non zero exit status %d: %s", code, command).
		WithDetail("exit_code", code).
		WithDetail("command", command)
}

// CmdExitedPrematurely reports a process that terminated without an exit status
func CmdExitedPrematurely(command string) *Error {
	return Newf(ErrCmdExitedPrematurely, "terminated without status code: %s", command).
		WithDetail("command", command)
}

// CommandNotFound reports an executable missing from PATH
func CommandNotFound(name string, err error) *Error {
	if err == nil {
		err = fmt.Errorf("not found in PATH")
	}
	return Wrapf(err, ErrCommandNotFound, "command not found: %s", name).
		WithDetail("command", name)
}

// InsufficientPrivileges reports a failed permission probe
func InsufficientPrivileges(op, path string) *Error {
	return Newf(ErrInsufficientPrivileges, "insufficient privileges to %s %s", op, path).
		WithDetail("path", path).
		WithDetail("operation", op)
}

// PathNotFound reports a missing path
func PathNotFound(path string) *Error {
	return Newf(ErrPathNotFound, "path not found: %s", path).
		WithDetail("path", path)
}

// CopyFailed reports a failed copy, naming both paths
func CopyFailed(src, dest string, err error) *Error {
	return Wrapf(err, ErrCopy, "copy %s -> %s failed", src, dest).
		WithDetail("source", src).
		WithDetail("destination", dest)
}

// ExitCode returns the exit code recorded on a NOT_ZERO_EXIT error
func ExitCode(err error) (int, bool) {
	if !IsErrorCode(err, ErrNotZeroExit) {
		return 0, false
	}
	code, ok := GetErrorDetails(err)["exit_code"].(int)
	return code, ok
}
