// Package errors provides error handling conventions for the devdeck CLI.
//
// It re-exports the constructors of github.com/cockroachdb/errors so that
// call sites wrap with stack context through a single import, and defines
// sentinel errors, an ExitError type for CLI exit code handling, and exit
// code constants following standard Unix conventions.
//
// # Sentinel Errors
//
//	if errors.Is(err, deckerrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := deckerrors.NewUserError(deckerrors.ErrInvalidConfig, "Check your config file")
//	os.Exit(deckerrors.ExitCode(err))
package errors
