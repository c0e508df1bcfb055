package clierr

import (
	"errors"
	"fmt"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitRuntime = 1
	// ExitUsage covers bad arguments, bad dates and unusable configuration
	ExitUsage = 2
)

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// ExitCode returns the process exit code
func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// Usage reports invalid input
func Usage(format string, args ...any) error {
	return &ExitError{code: ExitUsage, msg: fmt.Sprintf(format, args...)}
}

// WrapUsage reports invalid input caused by err
func WrapUsage(err error, format string, args ...any) error {
	return Wrap(ExitUsage, err, format, args...)
}

// Wrap creates an ExitError with the given code wrapping an underlying cause.
func Wrap(code int, cause error, format string, args ...any) error {
	if code <= 0 {
		code = ExitRuntime
	}
	return &ExitError{code: code, msg: fmt.Sprintf(format, args...), cause: cause}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return ExitRuntime
}
