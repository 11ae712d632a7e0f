// Package registry stores the service registry file through a host
// adapter's file system.
package registry

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/mcp"
	"github.com/thoreinstein/devdeck/internal/mcp/parser"
	"github.com/thoreinstein/devdeck/internal/mcp/validator"
	"github.com/thoreinstein/devdeck/internal/paths"
)

var (
	// ErrServiceNotFound is returned by Get for an unknown name.
	ErrServiceNotFound = errors.Mark(errors.New("service not found"), errors.ErrNotFound)

	// ErrServiceExists is returned by Add when the name is taken and
	// replacement was not requested.
	ErrServiceExists = errors.New("service already exists")

	// ErrInvalidService wraps the first validation error of a rejected entry.
	ErrInvalidService = errors.New("invalid service")
)

// Registry reads and writes the service registry file.
type Registry struct {
	fs     adapter.FileSystem
	env    adapter.Environment
	path   string
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithPath overrides the registry file location.
func WithPath(p string) Option {
	return func(r *Registry) {
		r.path = p
	}
}

// WithLogger sets the registry's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// New creates a Registry over a's file system. Without WithPath the file
// lives at <appData>/devdeck/services.json on the host.
func New(a adapter.Adapter, opts ...Option) *Registry {
	r := &Registry{
		fs:     a.FileSystem(),
		env:    a.Environment(),
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the registry file path.
func (r *Registry) Path() (string, error) {
	if r.path != "" {
		return r.path, nil
	}
	dir, err := r.env.AppDataDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving services path")
	}
	return paths.ServicesPath(dir), nil
}

// Load reads the registry. A missing or malformed file yields an empty
// registry.
func (r *Registry) Load(ctx context.Context) (*mcp.File, error) {
	p, err := r.Path()
	if err != nil {
		return nil, err
	}

	data, err := r.fs.ReadFile(ctx, p)
	if err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			r.logger.Debug("service registry unreadable, starting empty", "path", p, "error", err)
		}
		return mcp.NewFile(), nil
	}

	f, err := parser.Parse([]byte(data))
	if err != nil {
		r.logger.Debug("service registry malformed, starting empty", "path", p, "error", err)
		return mcp.NewFile(), nil
	}
	return f, nil
}

// Save writes f, creating the parent directory first.
func (r *Registry) Save(ctx context.Context, f *mcp.File) error {
	p, err := r.Path()
	if err != nil {
		return err
	}
	data, err := parser.Write(f)
	if err != nil {
		return err
	}
	if err := r.fs.Mkdir(ctx, filepath.Dir(p), true); err != nil {
		return errors.Wrapf(err, "creating directory for %s", p)
	}
	if err := r.fs.WriteFile(ctx, p, string(data)); err != nil {
		return errors.Wrap(err, "writing service registry")
	}
	r.logger.Debug("service registry saved", "path", p, "services", len(f.Services))
	return nil
}

// List returns every service ordered by name.
func (r *Registry) List(ctx context.Context) ([]*mcp.Service, error) {
	f, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*mcp.Service, 0, len(f.Services))
	for _, name := range f.Names() {
		out = append(out, f.Services[name])
	}
	return out, nil
}

// Get returns the named service.
func (r *Registry) Get(ctx context.Context, name string) (*mcp.Service, error) {
	f, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	s, ok := f.Services[name]
	if !ok {
		return nil, errors.Wrapf(ErrServiceNotFound, "%q", name)
	}
	return s, nil
}

// Add validates s and stores it. An existing entry with the same name is
// only overwritten when replace is set.
func (r *Registry) Add(ctx context.Context, s *mcp.Service, replace bool) error {
	if err := r.check(s); err != nil {
		return err
	}

	f, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if _, exists := f.Services[s.Name]; exists && !replace {
		return errors.Wrapf(ErrServiceExists, "%q", s.Name)
	}
	f.Services[s.Name] = s.Clone()
	return r.Save(ctx, f)
}

// Remove deletes the named service and reports whether it existed.
// Removing an absent service is not an error and leaves the file untouched.
func (r *Registry) Remove(ctx context.Context, name string) (bool, error) {
	f, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := f.Services[name]; !ok {
		return false, nil
	}
	delete(f.Services, name)
	return true, r.Save(ctx, f)
}

// ImportResult summarizes an Import.
type ImportResult struct {
	Added    []string `json:"added"`
	Replaced []string `json:"replaced"`
	Skipped  []string `json:"skipped"`
	Invalid  []string `json:"invalid"`
}

// Import merges the services found in the file at source, which may be a
// registry file or a document with an "mcpServers" object. Invalid entries
// are reported and left out. Existing names are kept unless replace is set.
// Nothing is written when no entry changes.
func (r *Registry) Import(ctx context.Context, source string, replace bool) (*ImportResult, error) {
	data, err := r.fs.ReadFile(ctx, source)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", source)
	}
	incoming, err := parser.ParseImport([]byte(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", source)
	}

	f, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	for _, name := range incoming.Names() {
		s := incoming.Services[name]
		if err := r.check(s); err != nil {
			r.logger.Warn("skipping invalid service", "service", name, "error", err)
			res.Invalid = append(res.Invalid, name)
			continue
		}
		_, exists := f.Services[name]
		switch {
		case exists && !replace:
			res.Skipped = append(res.Skipped, name)
			continue
		case exists:
			res.Replaced = append(res.Replaced, name)
		default:
			res.Added = append(res.Added, name)
		}
		f.Services[name] = s
	}

	if len(res.Added)+len(res.Replaced) == 0 {
		return res, nil
	}
	if err := r.Save(ctx, f); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Registry) check(s *mcp.Service) error {
	issues := validator.Validate(s)
	for _, w := range validator.Warnings(issues) {
		r.logger.Warn("service definition", "warning", w.Error())
	}
	if first := validator.First(issues); first != nil {
		return errors.Wrap(errors.Mark(first, ErrInvalidService), "validating service")
	}
	return nil
}
