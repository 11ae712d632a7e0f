// Package extension implements the adapter for an editor-extension host.
//
// The host sandbox exposes its file system as an afero.Fs, its windowing
// API through [Window] and integrated terminals through [Terminal]. Commands
// are sent to a terminal fire-and-forget: the result reports that the text
// was delivered, never the command's output or exit status.
package extension

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/spf13/afero"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// TerminalName is the name given to the integrated terminal the adapter opens.
const TerminalName = "devdeck"

// Adapter is the editor-extension host adapter.
type Adapter struct {
	caps      host.Capabilities
	fs        *FileSystem
	env       *Environment
	ui        *UI
	terminals TerminalFactory
	logger    *slog.Logger

	mu       sync.Mutex
	terminal Terminal
}

var _ adapter.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithFs sets the host file system. Defaults to an in-memory file system.
func WithFs(fs afero.Fs) Option {
	return func(a *Adapter) {
		a.fs.fs = fs
	}
}

// WithWindow sets the host windowing glue.
func WithWindow(w Window) Option {
	return func(a *Adapter) {
		a.ui.window = w
	}
}

// WithTerminals sets how integrated terminals are created.
func WithTerminals(f TerminalFactory) Option {
	return func(a *Adapter) {
		a.terminals = f
	}
}

// WithEnv seeds the environment visible to the extension.
func WithEnv(vars map[string]string) Option {
	return func(a *Adapter) {
		a.env.vars = maps.Clone(vars)
		if a.env.vars == nil {
			a.env.vars = map[string]string{}
		}
	}
}

// WithProjectDir sets the open workspace folder.
func WithProjectDir(dir string) Option {
	return func(a *Adapter) {
		a.env.projectDir = dir
	}
}

// WithStorageDir sets the extension's global storage directory, reported
// as the application data directory.
func WithStorageDir(dir string) Option {
	return func(a *Adapter) {
		a.env.storageDir = dir
	}
}

// WithLogger sets the adapter's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New creates the extension adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		caps:   host.DefaultCapabilities(host.Extension),
		fs:     &FileSystem{fs: afero.NewMemMapFs()},
		env:    &Environment{vars: map[string]string{}},
		ui:     &UI{},
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Host() host.Host { return host.Extension }

func (a *Adapter) Capabilities() host.Capabilities { return a.caps }

func (a *Adapter) FileSystem() adapter.FileSystem { return a.fs }

func (a *Adapter) Environment() adapter.Environment { return a.env }

func (a *Adapter) UI() adapter.UI { return a.ui }
