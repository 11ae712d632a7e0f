package adapter

import (
	"context"
	"io/fs"
	"time"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
)

// Sentinel errors shared by all adapters.
var (
	// ErrNotSupported indicates the host cannot perform the operation at all.
	ErrNotSupported = errors.New("operation not supported on this host")

	// ErrNotFound indicates a missing file, directory or key.
	// Adapters mark it so errors.Is(err, fs.ErrNotExist) also holds.
	ErrNotFound = errors.Mark(errors.New("not found"), fs.ErrNotExist)
)

// DefaultCommandTimeout applies when CommandOptions.Timeout is zero.
const DefaultCommandTimeout = 60 * time.Second

// Adapter is the per-host implementation of the capability contract.
//
// Implementations are constructed once and never reconfigured; their
// sub-adapters may hold internal state such as an open terminal.
type Adapter interface {
	// Host returns the host identity.
	Host() host.Host

	// Capabilities returns the capability set the host declares.
	Capabilities() host.Capabilities

	// FileSystem returns the host's file system.
	FileSystem() FileSystem

	// Environment returns the host's environment.
	Environment() Environment

	// UI returns the host's user interface surface.
	UI() UI

	// ExecuteCommand runs command through the host. It never returns a Go
	// error: failures, timeouts and absent capability are reported in the result.
	ExecuteCommand(ctx context.Context, command string, opts *CommandOptions) CommandResult
}

// CommandOptions tunes a single ExecuteCommand call. A nil *CommandOptions
// means all defaults.
type CommandOptions struct {
	// Dir is the working directory. Empty means the host's default.
	Dir string

	// Env holds extra environment variables layered over the host environment.
	Env map[string]string

	// Timeout bounds execution. Zero means the host's default.
	Timeout time.Duration
}

// EffectiveTimeout returns opts.Timeout when set, else hostDefault, else
// DefaultCommandTimeout.
func (o *CommandOptions) EffectiveTimeout(hostDefault time.Duration) time.Duration {
	switch {
	case o != nil && o.Timeout > 0:
		return o.Timeout
	case hostDefault > 0:
		return hostDefault
	}
	return DefaultCommandTimeout
}

// FileSystem is the host's file system.
//
// Paths are host paths: OS paths on desktop, workspace paths on the
// extension host and logical slash-separated keys in the browser.
type FileSystem interface {
	// ReadFile returns the file's text. A missing file yields an error
	// satisfying errors.Is(err, ErrNotFound).
	ReadFile(ctx context.Context, path string) (string, error)

	// WriteFile replaces the file's content. Parent directories are not
	// created; call Mkdir first for deep paths.
	WriteFile(ctx context.Context, path, content string) error

	// Exists reports whether path names a file or directory.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Directories require recursive.
	Delete(ctx context.Context, path string, recursive bool) error

	// Mkdir creates a directory. With recursive it creates parents and
	// succeeds when the directory already exists.
	Mkdir(ctx context.Context, path string, recursive bool) error

	// ReadDir returns the sorted names of the entries directly below path.
	ReadDir(ctx context.Context, path string) ([]string, error)
}

// Environment is the host's environment.
type Environment interface {
	// Get returns the value of key and whether it is set, so "unset" and
	// "set to empty" stay distinguishable.
	Get(key string) (string, bool)

	// Set assigns key for the remainder of the process (or the host session).
	Set(key, value string) error

	// All returns a copy of every variable.
	All() map[string]string

	// UserHomeDir returns the user's home directory on this host.
	UserHomeDir() (string, error)

	// AppDataDir returns the per-user application data directory on this host.
	AppDataDir() (string, error)

	// ProjectDir returns the open project's root. Only valid when the
	// adapter's capabilities report ProjectDir; otherwise ErrNotSupported.
	ProjectDir() (string, error)
}

// UI is the host's user interface surface.
type UI interface {
	// ShowMessage displays msg. For MessageConfirm it blocks until the user
	// answers and returns the chosen button index, where 0 is always the
	// affirmative choice. For other types it returns 0 once displayed.
	ShowMessage(ctx context.Context, msg Message) (int, error)

	// ShowNotification shows a non-blocking notification.
	ShowNotification(ctx context.Context, n Notification) error

	// OpenExternal asks the host to open url in the user's browser.
	OpenExternal(ctx context.Context, url string) error
}

// MessageType selects how ShowMessage presents a message.
type MessageType string

// Message types.
const (
	MessageInfo    MessageType = "info"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
	MessageConfirm MessageType = "confirm"
)

// Message is a modal message.
type Message struct {
	Type    MessageType
	Title   string
	Text    string
	Detail  string
	Buttons []string
}

// ConfirmButtons returns the button labels to present for a confirm
// message: the caller's labels, or "OK"/"Cancel" when none are given.
// Index 0 is the affirmative choice.
func (m Message) ConfirmButtons() []string {
	if len(m.Buttons) > 0 {
		return m.Buttons
	}
	return []string{"OK", "Cancel"}
}

// Notification is a non-blocking toast.
type Notification struct {
	Title string
	Body  string
	Level MessageType
}
