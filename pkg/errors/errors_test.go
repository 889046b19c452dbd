// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/fastidious/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "path_not_found_error",
			code:    errors.ErrPathNotFound,
			message: "file not found",
			wantStr: "[PATH_NOT_FOUND] file not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrPathNotFound, "error 1")
	err2 := errors.New(errors.ErrPathNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrCopy, "copy"), errors.ErrCopy, true},
		{"different_code", errors.New(errors.ErrCopy, "copy"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileWrite, "denied"), errors.ErrFileWrite, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrPathNotFound, false},
		{"nil_error", nil, errors.ErrPathNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrDiffFailed, "diff")); got != errors.ErrDiffFailed {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrDiffFailed)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileRead, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("Top level should have ErrConfigLoad code")
	}
	if !stderrors.Is(configErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}

func TestConstructors(t *testing.T) {
	t.Run("not_zero_exit_carries_code", func(t *testing.T) {
		err := errors.NotZeroExit("false", 3)
		code, ok := errors.ExitCode(err)
		if !ok || code != 3 {
			t.Errorf("ExitCode() = %d, %v, want 3, true", code, ok)
		}
	})

	t.Run("exit_code_on_other_error", func(t *testing.T) {
		if _, ok := errors.ExitCode(errors.New(errors.ErrExec, "boom")); ok {
			t.Error("ExitCode() should be false for other codes")
		}
	})

	t.Run("var_not_found_names_key", func(t *testing.T) {
		err := errors.VarNotFound("user.name")
		if err.Details["key"] != "user.name" {
			t.Errorf("key detail = %v", err.Details["key"])
		}
	})

	t.Run("copy_failed_names_both_paths", func(t *testing.T) {
		err := errors.CopyFailed("/tmp/a", "/etc/b", stderrors.New("disk full"))
		if err.Details["source"] != "/tmp/a" || err.Details["destination"] != "/etc/b" {
			t.Errorf("details = %v", err.Details)
		}
		want := "[COPY] copy /tmp/a -> /etc/b failed: disk full"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("command_not_found_without_cause", func(t *testing.T) {
		err := errors.CommandNotFound("vimdiff", nil)
		if !errors.IsErrorCode(err, errors.ErrCommandNotFound) {
			t.Error("expected COMMAND_NOT_FOUND")
		}
	})
}
