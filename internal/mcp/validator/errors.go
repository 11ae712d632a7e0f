// Package validator checks service registry entries.
package validator

import (
	"fmt"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Causes carried in ValidationError.Err.
var (
	ErrMissingServiceName = errors.Mark(errors.New("service name is required"), errors.ErrMissingName)
	ErrInvalidServiceName = errors.New("invalid service name")
	ErrMissingCommand     = errors.New("service requires command")
	ErrEmptyEnvKey        = errors.New("environment variable key is empty")

	// ErrInvalidEnvKey covers keys containing '=' or NUL.
	ErrInvalidEnvKey = errors.New("invalid environment variable key")
)

// Severity grades a ValidationError. Errors block saving an entry;
// warnings are logged and the entry is kept.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError is one problem found in a service entry.
type ValidationError struct {
	Service  string
	Field    string
	Message  string
	Severity Severity
	Err      error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Service != "" && e.Field != "":
		return fmt.Sprintf("%s: service %q field %q: %s", e.Severity, e.Service, e.Field, e.Message)
	case e.Service != "":
		return fmt.Sprintf("%s: service %q: %s", e.Severity, e.Service, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %s", e.Severity, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Severity, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasErrors reports whether any issue has error severity.
func HasErrors(errs []*ValidationError) bool {
	return First(errs) != nil
}

// First returns the first issue with error severity, or nil.
func First(errs []*ValidationError) *ValidationError {
	for _, err := range errs {
		if err.Severity == SeverityError {
			return err
		}
	}
	return nil
}

// Warnings filters errs down to warnings.
func Warnings(errs []*ValidationError) []*ValidationError {
	var out []*ValidationError
	for _, e := range errs {
		if e.Severity == SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}
