package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0

	// ExitUser covers bad input, invalid configuration and pages the host
	// does not offer.
	ExitUser = 1

	// ExitSystem covers I/O failures and commands that failed on the host.
	ExitSystem = 2
)

// cockroachdb/errors, re-exported so callers import a single errors package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Unwrap = crdb.Unwrap
	Join   = crdb.Join
)

// Marks shared across packages. Domain errors are tagged with these via
// Mark so the CLI can classify them without importing every package.
var (
	ErrMissingName   = crdb.New("name is required")
	ErrNotFound      = crdb.New("resource not found")
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// ExitError carries the exit code for a failed command and an optional
// hint printed below the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError wraps err with code and no suggestion.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError marks err as the user's to fix.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError marks err as a failure of the machine or host.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError is a user error pointing at the effective configuration.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: devdeck config show")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the code carried by the first ExitError in err's chain.
// nil is ExitSuccess and any other error is ExitSystem.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
