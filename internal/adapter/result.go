package adapter

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Error codes carried by CommandError.
const (
	// CodeNotSupported is the capability-absent sentinel. It is not retryable.
	CodeNotSupported = "NOT_SUPPORTED"

	// CodeTimeout means the command exceeded its timeout and was killed.
	CodeTimeout = "TIMEOUT"

	// CodeExitStatus means the command ran and exited non-zero.
	CodeExitStatus = "EXIT_STATUS"

	// CodeSpawnFailed means the command could not be started.
	CodeSpawnFailed = "SPAWN_FAILED"

	// CodeTerminalUnavailable means the host terminal could not be opened.
	CodeTerminalUnavailable = "TERMINAL_UNAVAILABLE"
)

// ErrCommandFailed is the cause of errors returned by CommandResult.Err for
// anything other than the capability-absent sentinel.
var ErrCommandFailed = errors.New("command failed")

// CommandError is the structured error of a failed command.
type CommandError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CommandResult is the outcome of ExecuteCommand.
//
// Success=false implies Error or Stderr is populated whenever the host can
// supply one. Stdout and Stderr are empty on hosts that do not capture output.
type CommandResult struct {
	Success  bool          `json:"success"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	ExitCode int           `json:"exitCode"`
	Error    *CommandError `json:"error,omitempty"`
}

// NotSupported returns the capability-absent sentinel result.
func NotSupported() CommandResult {
	return CommandResult{
		Success:  false,
		ExitCode: -1,
		Error: &CommandError{
			Code:    CodeNotSupported,
			Message: "command execution is not available on this host",
		},
	}
}

// Failure builds a failed result with a structured error.
func Failure(code, format string, args ...any) CommandResult {
	return CommandResult{
		Success:  false,
		ExitCode: -1,
		Error:    &CommandError{Code: code, Message: fmt.Sprintf(format, args...)},
	}
}

// IsNotSupported reports whether r is the capability-absent sentinel.
func (r CommandResult) IsNotSupported() bool {
	return !r.Success && r.Error != nil && r.Error.Code == CodeNotSupported
}

// Output returns trimmed stdout.
func (r CommandResult) Output() string {
	return strings.TrimSpace(r.Stdout)
}

// Err converts a failed result into an error. It returns nil on success,
// ErrNotSupported for the sentinel and ErrCommandFailed otherwise.
func (r CommandResult) Err() error {
	if r.Success {
		return nil
	}
	if r.IsNotSupported() {
		return ErrNotSupported
	}

	msg := strings.TrimSpace(r.Stderr)
	code := ""
	if r.Error != nil {
		code = r.Error.Code
		if r.Error.Message != "" {
			msg = r.Error.Message
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", r.ExitCode)
	}
	if code != "" {
		return errors.Wrapf(ErrCommandFailed, "%s: %s", code, msg)
	}
	return errors.Wrap(ErrCommandFailed, msg)
}
