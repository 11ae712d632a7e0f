package validator

import (
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/devdeck/internal/mcp"
)

// namePattern matches registry keys usable on a command line without quoting.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validate checks one service and returns its issues in a stable order,
// or nil if it is valid.
func Validate(s *mcp.Service) []*ValidationError {
	if s == nil {
		return []*ValidationError{{Message: "service is nil", Severity: SeverityError}}
	}

	var errs []*ValidationError
	name := s.Name

	switch {
	case name == "":
		errs = append(errs, &ValidationError{
			Field:    "name",
			Message:  "service name is required",
			Severity: SeverityError,
			Err:      ErrMissingServiceName,
		})
	case !namePattern.MatchString(name):
		errs = append(errs, &ValidationError{
			Service:  name,
			Field:    "name",
			Message:  "name may contain only letters, digits, '.', '_' and '-'",
			Severity: SeverityError,
			Err:      ErrInvalidServiceName,
		})
	}

	command := strings.TrimSpace(s.Command)
	if command == "" {
		errs = append(errs, &ValidationError{
			Service:  name,
			Field:    "command",
			Message:  "command is required",
			Severity: SeverityError,
			Err:      ErrMissingCommand,
		})
	} else if len(s.Args) == 0 && strings.ContainsAny(command, " \t") {
		errs = append(errs, &ValidationError{
			Service:  name,
			Field:    "command",
			Message:  "command contains whitespace; pass arguments separately",
			Severity: SeverityWarning,
		})
	}

	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		switch {
		case k == "":
			errs = append(errs, &ValidationError{
				Service:  name,
				Field:    "env",
				Message:  "environment variable key cannot be empty",
				Severity: SeverityError,
				Err:      ErrEmptyEnvKey,
			})
		case strings.ContainsAny(k, "=\x00"):
			errs = append(errs, &ValidationError{
				Service:  name,
				Field:    "env",
				Message:  "environment variable key " + k + " contains '=' or NUL",
				Severity: SeverityError,
				Err:      ErrInvalidEnvKey,
			})
		}
	}

	return errs
}

// ValidateFile validates every service in f, ordered by name.
func ValidateFile(f *mcp.File) []*ValidationError {
	if f == nil {
		return nil
	}
	var errs []*ValidationError
	for _, name := range f.Names() {
		errs = append(errs, Validate(f.Services[name])...)
	}
	return errs
}
