// Package browser implements the adapter for a browser sandbox.
//
// The browser cannot run processes: ExecuteCommand always returns the
// capability-absent sentinel. Files and environment variables are emulated
// over a namespaced key-value store; directories are logical and exist as
// long as some key lives below them.
package browser

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/kvstore"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// DefaultNamespace prefixes every key the adapter writes.
const DefaultNamespace = "devdeck"

// Logical directories reported by the emulated environment.
const (
	HomeDir    = "/home/user"
	AppDataDir = "/appdata"
)

// Adapter is the browser host adapter.
type Adapter struct {
	caps   host.Capabilities
	fs     *FileSystem
	env    *Environment
	ui     *UI
	logger *slog.Logger
}

var _ adapter.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithNamespace changes the key namespace.
func WithNamespace(ns string) Option {
	return func(a *Adapter) {
		if ns != "" {
			a.fs.prefix = ns + ":fs:"
			a.env.prefix = ns + ":env:"
		}
	}
}

// WithWindow sets the browser window glue.
func WithWindow(w Window) Option {
	return func(a *Adapter) {
		a.ui.window = w
	}
}

// WithLogger sets the adapter's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New creates the browser adapter over store. The adapter does not close store.
func New(store kvstore.Store, opts ...Option) *Adapter {
	a := &Adapter{
		caps:   host.DefaultCapabilities(host.Browser),
		fs:     &FileSystem{store: store, prefix: DefaultNamespace + ":fs:"},
		env:    &Environment{store: store, prefix: DefaultNamespace + ":env:"},
		ui:     &UI{},
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.env.logger = a.logger
	return a
}

func (a *Adapter) Host() host.Host { return host.Browser }

func (a *Adapter) Capabilities() host.Capabilities { return a.caps }

func (a *Adapter) FileSystem() adapter.FileSystem { return a.fs }

func (a *Adapter) Environment() adapter.Environment { return a.env }

func (a *Adapter) UI() adapter.UI { return a.ui }

// ExecuteCommand returns the NOT_SUPPORTED sentinel without side effects.
func (a *Adapter) ExecuteCommand(_ context.Context, command string, _ *adapter.CommandOptions) adapter.CommandResult {
	a.logger.Debug("command execution unavailable in browser", "command", command)
	return adapter.NotSupported()
}
