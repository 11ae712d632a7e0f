// Package settings reads and writes the AI coding assistant's settings file
// (environment variables, API client tuning and provider selection) through
// the host adapter's file system.
package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/paths"
	"github.com/thoreinstein/devdeck/internal/redact"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// ErrInvalidSettings is returned when a value fails validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Store loads and saves Settings at a fixed path.
type Store struct {
	fs     adapter.FileSystem
	env    adapter.Environment
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPath overrides the settings file location.
func WithPath(p string) Option {
	return func(s *Store) {
		s.path = p
	}
}

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a Store backed by a's file system. Without WithPath the
// file lives at <home>/.claude/settings.json on the host.
func NewStore(a adapter.Adapter, opts ...Option) *Store {
	s := &Store{
		fs:     a.FileSystem(),
		env:    a.Environment(),
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the settings file path.
func (s *Store) Path() (string, error) {
	if s.path != "" {
		return s.path, nil
	}
	home, err := s.env.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving settings path")
	}
	return paths.SettingsPath(home), nil
}

// Load reads the settings file. A missing, unreadable or malformed file
// yields Default; only a failure to resolve the path is returned.
func (s *Store) Load(ctx context.Context) (*Settings, error) {
	p, err := s.Path()
	if err != nil {
		return nil, err
	}

	st, err := s.read(ctx, p)
	if err != nil {
		s.logger.Debug("settings unusable, using defaults", "path", p, "error", err)
		return Default(), nil
	}
	return st, nil
}

// read decodes the file at p. Only a missing file yields Default.
func (s *Store) read(ctx context.Context, p string) (*Settings, error) {
	data, err := s.fs.ReadFile(ctx, p)
	if errors.Is(err, adapter.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", p)
	}

	var st Settings
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, errors.Wrapf(ErrInvalidSettings, "%s does not decode (%v); fix or remove it", p, err)
	}
	return &st, nil
}

// Save writes st, creating the parent directory first. Write failures are
// returned.
func (s *Store) Save(ctx context.Context, st *Settings) error {
	p, err := s.Path()
	if err != nil {
		return err
	}

	if err := s.fs.Mkdir(ctx, filepath.Dir(p), true); err != nil {
		return errors.Wrapf(err, "creating directory for %s", p)
	}
	data, err := fileutil.EncodeJSON(st)
	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}
	if err := s.fs.WriteFile(ctx, p, string(data)); err != nil {
		return errors.Wrap(err, "writing settings")
	}
	s.logger.Debug("settings saved", "path", p)
	return nil
}

// Update loads the settings, applies fn and saves the result. A file that
// exists but cannot be read or decoded is left alone and reported.
func (s *Store) Update(ctx context.Context, fn func(*Settings) error) (*Settings, error) {
	p, err := s.Path()
	if err != nil {
		return nil, err
	}
	st, err := s.read(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetEnv sets one environment variable.
func (s *Store) SetEnv(ctx context.Context, key, value string) error {
	if err := validateEnvKey(key); err != nil {
		return err
	}
	_, err := s.Update(ctx, func(st *Settings) error {
		st.Env[key] = value
		return nil
	})
	return err
}

// UnsetEnv removes environment variables. Absent keys are ignored.
func (s *Store) UnsetEnv(ctx context.Context, keys ...string) error {
	_, err := s.Update(ctx, func(st *Settings) error {
		for _, k := range keys {
			delete(st.Env, k)
		}
		return nil
	})
	return err
}

// SetAPISettings replaces the API client settings.
func (s *Store) SetAPISettings(ctx context.Context, api APISettings) error {
	if err := api.Validate(); err != nil {
		return err
	}
	_, err := s.Update(ctx, func(st *Settings) error {
		st.SetAPI(api)
		return nil
	})
	return err
}

// Validate checks that the values are usable.
func (a APISettings) Validate() error {
	switch {
	case a.Timeout <= 0:
		return errors.Wrapf(ErrInvalidSettings, "timeout must be positive, got %d", a.Timeout)
	case a.RetryAttempts < 0:
		return errors.Wrapf(ErrInvalidSettings, "retryAttempts must not be negative, got %d", a.RetryAttempts)
	case a.RetryDelay < 0:
		return errors.Wrapf(ErrInvalidSettings, "retryDelay must not be negative, got %d", a.RetryDelay)
	}
	return nil
}

func validateEnvKey(key string) error {
	if key == "" {
		return errors.Wrap(ErrInvalidSettings, "environment variable name is required")
	}
	if strings.ContainsAny(key, "= \t\n\x00") {
		return errors.Wrapf(ErrInvalidSettings, "invalid environment variable name %q", key)
	}
	return nil
}

// EnvEntry is one environment variable prepared for display.
type EnvEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MaskedEnv returns the environment sorted by key with secrets masked.
func (s *Settings) MaskedEnv() []EnvEntry {
	masked := redact.Env(s.Env)
	out := make([]EnvEntry, 0, len(masked))
	for k, v := range masked {
		out = append(out, EnvEntry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
