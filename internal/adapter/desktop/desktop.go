// Package desktop implements the full-capability adapter for a native
// desktop process: real subprocesses, the real file system, the process
// environment and a terminal user interface.
package desktop

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/cli/prompt"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// Adapter is the desktop host adapter.
type Adapter struct {
	caps    host.Capabilities
	fs      *FileSystem
	env     *Environment
	ui      *UI
	timeout time.Duration
	shell   []string
	logger  *slog.Logger
}

var _ adapter.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout sets the default command timeout used when a call passes none.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the adapter's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// WithIO replaces the terminal streams used by the UI.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *Adapter) {
		a.ui.in = in
		a.ui.out = out
	}
}

// WithChooser overrides how confirm prompts collect an answer.
func WithChooser(c prompt.Chooser) Option {
	return func(a *Adapter) {
		a.ui.chooser = c
	}
}

// WithOpener overrides how OpenExternal launches URLs.
func WithOpener(fn func(url string) []string) Option {
	return func(a *Adapter) {
		a.ui.opener = fn
	}
}

// WithEnviron seeds the environment from a KEY=VALUE list instead of os.Environ.
func WithEnviron(environ []string) Option {
	return func(a *Adapter) {
		a.env = newEnvironment(environ)
	}
}

// New creates the desktop adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		caps:    host.DefaultCapabilities(host.Desktop),
		fs:      &FileSystem{},
		env:     newEnvironment(os.Environ()),
		timeout: adapter.DefaultCommandTimeout,
		shell:   defaultShell(),
		logger:  logging.NewDiscard(),
	}
	a.ui = &UI{in: os.Stdin, out: os.Stdout, opener: defaultOpener}
	for _, opt := range opts {
		opt(a)
	}
	a.ui.logger = a.logger
	return a
}

func (a *Adapter) Host() host.Host { return host.Desktop }

func (a *Adapter) Capabilities() host.Capabilities { return a.caps }

func (a *Adapter) FileSystem() adapter.FileSystem { return a.fs }

func (a *Adapter) Environment() adapter.Environment { return a.env }

func (a *Adapter) UI() adapter.UI { return a.ui }
