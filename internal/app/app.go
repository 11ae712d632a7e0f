// Package app wires one host adapter and the services built on it from a
// loaded configuration.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/adapter/browser"
	"github.com/thoreinstein/devdeck/internal/adapter/desktop"
	"github.com/thoreinstein/devdeck/internal/adapter/extension"
	"github.com/thoreinstein/devdeck/internal/config"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/kvstore"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/mcp/registry"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/internal/paths"
	"github.com/thoreinstein/devdeck/internal/runtime"
	"github.com/thoreinstein/devdeck/internal/settings"
)

// ErrPageUnavailable is returned when a page is not visible on the current host.
var ErrPageUnavailable = errors.New("page not available")

// App holds the adapter and every service constructed over it.
type App struct {
	Config   *config.Config
	Adapter  adapter.Adapter
	Catalog  *pages.Catalog
	Runtime  *runtime.Manager
	Settings *settings.Store
	Services *registry.Registry
	Logger   *slog.Logger

	store kvstore.Store
}

// Options carries the process streams the adapters talk through.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger

	// Store replaces the browser key-value store. The App does not close it.
	Store kvstore.Store
}

func (o *Options) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = logging.NewDiscard()
	}
}

// New builds the App for cfg.Host. Close releases the browser store.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	opts.defaults()
	logger := opts.Logger

	a := &App{Config: cfg, Logger: logger}

	ad, err := a.newAdapter(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	a.Adapter = ad

	a.Catalog = pages.NewCatalog(
		pages.WithLogger(logger),
		pages.WithOverrideHook(func(old, replacement pages.PageMeta) {
			logger.Debug("page overridden", "id", replacement.ID, "old", old.Name, "new", replacement.Name)
		}),
	)
	if err := a.Catalog.Register(pages.Builtin()...); err != nil {
		_ = a.Close()
		return nil, errors.Wrap(err, "registering builtin pages")
	}

	a.Runtime = runtime.NewManager(ad, runtime.WithLogger(logger))

	settingsOpts := []settings.Option{settings.WithLogger(logger)}
	if cfg.SettingsPath != "" {
		settingsOpts = append(settingsOpts, settings.WithPath(cfg.SettingsPath))
	}
	a.Settings = settings.NewStore(ad, settingsOpts...)

	registryOpts := []registry.Option{registry.WithLogger(logger)}
	if cfg.ServicesPath != "" {
		registryOpts = append(registryOpts, registry.WithPath(cfg.ServicesPath))
	}
	a.Services = registry.New(ad, registryOpts...)

	logger.Debug("app ready", "host", ad.Host(), "capabilities", ad.Capabilities().String())
	return a, nil
}

func (a *App) newAdapter(ctx context.Context, cfg *config.Config, opts Options) (adapter.Adapter, error) {
	switch h := cfg.HostValue(); h {
	case host.Extension:
		return newExtension(cfg, opts)
	case host.Browser:
		store := opts.Store
		if store == nil {
			var err error
			store, err = openStore(ctx, cfg.Browser.Store)
			if err != nil {
				return nil, err
			}
			a.store = store
		}
		return browser.New(store,
			browser.WithNamespace(cfg.Browser.Namespace),
			browser.WithWindow(browser.StreamWindow{In: opts.In, Out: opts.Out}),
			browser.WithLogger(opts.Logger),
		), nil
	default:
		return desktop.New(
			desktop.WithTimeout(cfg.CommandTimeout),
			desktop.WithIO(opts.In, opts.Out),
			desktop.WithLogger(opts.Logger),
		), nil
	}
}

func openStore(ctx context.Context, path string) (kvstore.Store, error) {
	switch path {
	case "":
		return kvstore.NewMemory(), nil
	case config.DefaultBrowserStore:
		path = paths.BrowserStorePath()
	}
	store, err := kvstore.OpenSQLite(ctx, paths.ExpandHome(path))
	if err != nil {
		return nil, errors.Wrapf(err, "opening browser store %s", path)
	}
	return store, nil
}

// newExtension emulates the extension host from a terminal: the workspace
// is the project, commands are echoed to Out and dialogs read from In.
func newExtension(cfg *config.Config, opts Options) (*extension.Adapter, error) {
	workspace := cfg.Extension.Workspace
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "resolving extension workspace")
		}
		workspace = wd
	}
	workspace, err := filepath.Abs(paths.ExpandHome(workspace))
	if err != nil {
		return nil, errors.Wrap(err, "resolving extension workspace")
	}

	out := opts.Out
	return extension.New(
		extension.WithFs(afero.NewOsFs()),
		extension.WithEnv(environMap(os.Environ())),
		extension.WithProjectDir(workspace),
		extension.WithStorageDir(filepath.Join(paths.AppDataDir(), "extension")),
		extension.WithWindow(extension.StreamWindow{In: opts.In, Out: out}),
		extension.WithTerminals(func(string) (extension.Terminal, error) {
			return extension.StreamTerminal{W: out}, nil
		}),
		extension.WithLogger(opts.Logger),
	), nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			m[k] = v
		}
	}
	return m
}

// Host returns the adapter's host.
func (a *App) Host() host.Host {
	return a.Adapter.Host()
}

// Pages resolves the catalog for the current host and configuration.
func (a *App) Pages(f *pages.Filter) []pages.PageMeta {
	return a.Catalog.Resolve(a.Host(), &a.Config.Pages.Config, f)
}

// RequirePage returns ErrPageUnavailable when id is hidden on this host,
// disabled by configuration, or needs a capability the adapter lacks.
func (a *App) RequirePage(id string) error {
	if !a.Catalog.Visible(a.Host(), &a.Config.Pages.Config, id) {
		return errors.Wrapf(ErrPageUnavailable, "%s on the %s host", id, a.Host())
	}
	p, ok := a.Catalog.Get(id)
	if ok && !a.Adapter.Capabilities().Satisfies(p.Requirements()...) {
		return errors.Wrapf(ErrPageUnavailable, "%s needs %v; %s host provides %s",
			id, p.Requirements(), a.Host(), a.Adapter.Capabilities())
	}
	return nil
}

// Close releases resources opened by New.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
