package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrUnsupportedVersion indicates a file written by a newer devdeck.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidHost indicates an unrecognized host name.
	ErrInvalidHost = errors.New("invalid host")

	// ErrInvalidTimeout indicates a non-positive command timeout.
	ErrInvalidTimeout = errors.New("command_timeout must be positive")

	// ErrInvalidNamespace indicates a browser namespace that would break key prefixes.
	ErrInvalidNamespace = errors.New("namespace must be non-empty and contain no ':'")

	// ErrInvalidPages indicates an invalid custom page.
	ErrInvalidPages = errors.New("invalid page configuration")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or one error per offending field.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	switch {
	case cfg.Version < 1:
		errs = append(errs, &FieldError{Field: "version", Err: ErrVersionTooLow})
	case cfg.Version > CurrentVersion:
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if _, err := host.Parse(cfg.Host); err != nil {
		errs = append(errs, &FieldError{Field: "host", Value: cfg.Host, Err: ErrInvalidHost})
	}

	if cfg.CommandTimeout <= 0 {
		errs = append(errs, &FieldError{Field: "command_timeout", Value: cfg.CommandTimeout.String(), Err: ErrInvalidTimeout})
	}

	if err := cfg.Pages.Validate(); err != nil {
		errs = append(errs, &FieldError{Field: "pages", Value: err.Error(), Err: ErrInvalidPages})
	}

	if ns := cfg.Browser.Namespace; ns == "" || strings.Contains(ns, ":") {
		errs = append(errs, &FieldError{Field: "browser.namespace", Value: ns, Err: ErrInvalidNamespace})
	}

	for _, p := range []struct{ field, value string }{
		{"pages.file", cfg.Pages.File},
		{"browser.store", cfg.Browser.Store},
		{"extension.workspace", cfg.Extension.Workspace},
		{"settings_path", cfg.SettingsPath},
		{"services_path", cfg.ServicesPath},
	} {
		if err := validatePath(p.value); err != nil {
			errs = append(errs, &FieldError{Field: p.field, Value: p.value, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError is a validation error for one config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every field error found by Load or Save.
type ValidationError struct {
	Errs []error
}

func newValidationError(errs []error) error {
	return &ValidationError{Errs: errs}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "validating config: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

// Is makes every ValidationError match errors.ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrInvalidConfig
}
