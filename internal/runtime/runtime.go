// Package runtime manages Node.js versions through fnm on hosts that can
// run commands.
package runtime

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/versions"
)

// InstallTimeout bounds downloads started by Install.
const InstallTimeout = 10 * time.Minute

// Sentinel errors.
var (
	// ErrInvalidVersion is returned for a version argument fnm would not accept.
	ErrInvalidVersion = errors.New("invalid version argument")

	// ErrNoOutput is returned by queries on hosts that run commands without
	// returning their output.
	ErrNoOutput = errors.New("host does not return command output")
)

// versionArg accepts full or partial versions, lts aliases and "latest".
var versionArg = regexp.MustCompile(`^(v?\d+(\.\d+){0,2}|lts/(\*|latest|[a-z]+)|lts-latest|latest)$`)

// Manager drives fnm through an adapter.
type Manager struct {
	adapter adapter.Adapter
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a Manager over a.
func NewManager(a adapter.Adapter, opts ...Option) *Manager {
	m := &Manager{adapter: a, logger: logging.NewDiscard()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Available reports whether the host can run fnm at all.
func (m *Manager) Available() bool {
	return m.adapter.Capabilities().CommandExecution
}

// run executes command after the capability check, so nothing is issued
// on hosts that cannot execute commands.
func (m *Manager) run(ctx context.Context, command string, opts *adapter.CommandOptions) (adapter.CommandResult, error) {
	if !m.Available() {
		return adapter.NotSupported(), errors.Wrapf(adapter.ErrNotSupported, "running %q", command)
	}
	res := m.adapter.ExecuteCommand(ctx, command, opts)
	m.logger.Debug("fnm command", "command", command, "success", res.Success, "exit_code", res.ExitCode)
	if err := res.Err(); err != nil {
		return res, errors.Wrapf(err, "running %q", command)
	}
	return res, nil
}

// query is run for commands whose output is the point.
func (m *Manager) query(ctx context.Context, command string) (string, error) {
	if m.Available() && !m.adapter.Capabilities().CapturesOutput {
		return "", errors.Wrapf(ErrNoOutput, "running %q", command)
	}
	res, err := m.run(ctx, command, nil)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// ListInstalled returns installed versions. fnm marks every local version
// with "*", so the active flag is reconciled against "fnm current".
func (m *Manager) ListInstalled(ctx context.Context) ([]versions.Record, error) {
	out, err := m.query(ctx, "fnm list")
	if err != nil {
		return nil, err
	}
	records := versions.Parse(out)

	current, err := m.Current(ctx)
	if err != nil {
		m.logger.Debug("could not determine current version", "error", err)
		current = ""
	}
	for i := range records {
		records[i].IsActive = current != "" && records[i].Version == current
	}

	versions.SortNewestFirst(records)
	return records, nil
}

// ListRemote returns versions available for install, newest first.
func (m *Manager) ListRemote(ctx context.Context, ltsOnly bool) ([]versions.Record, error) {
	cmd := "fnm list-remote"
	if ltsOnly {
		cmd += " --lts"
	}
	out, err := m.query(ctx, cmd)
	if err != nil {
		return nil, err
	}
	records := versions.Parse(out)
	versions.SortNewestFirst(records)
	return records, nil
}

// Current returns the active version, or "" when none or the system node
// is in use.
func (m *Manager) Current(ctx context.Context) (string, error) {
	out, err := m.query(ctx, "fnm current")
	if err != nil {
		return "", err
	}
	v, err := versions.Normalize(strings.TrimSpace(out))
	if err != nil {
		return "", nil
	}
	return v, nil
}

// Install downloads and installs version.
func (m *Manager) Install(ctx context.Context, version string) error {
	v, err := checkVersionArg(version)
	if err != nil {
		return err
	}
	_, err = m.run(ctx, "fnm install "+v, &adapter.CommandOptions{Timeout: InstallTimeout})
	return err
}

// Uninstall removes version.
func (m *Manager) Uninstall(ctx context.Context, version string) error {
	v, err := checkVersionArg(version)
	if err != nil {
		return err
	}
	_, err = m.run(ctx, "fnm uninstall "+v, nil)
	return err
}

// Use switches the active version.
func (m *Manager) Use(ctx context.Context, version string) error {
	v, err := checkVersionArg(version)
	if err != nil {
		return err
	}
	_, err = m.run(ctx, "fnm use "+v, nil)
	return err
}

// SetDefault makes version the default alias.
func (m *Manager) SetDefault(ctx context.Context, version string) error {
	v, err := checkVersionArg(version)
	if err != nil {
		return err
	}
	_, err = m.run(ctx, "fnm default "+v, nil)
	return err
}

func checkVersionArg(version string) (string, error) {
	v := strings.TrimSpace(version)
	if !versionArg.MatchString(v) {
		return "", errors.Wrapf(ErrInvalidVersion, "%q", version)
	}
	return v, nil
}

// ToolStatus is the probe result for one tool.
type ToolStatus struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
}

// Tools probed by Status, in report order.
var Tools = []string{"fnm", "node", "npm"}

// Status probes each tool's version concurrently. A failing probe marks
// the tool as not installed rather than failing the whole check.
func (m *Manager) Status(ctx context.Context) ([]ToolStatus, error) {
	if !m.Available() {
		return nil, errors.Wrap(adapter.ErrNotSupported, "tool status")
	}
	if !m.adapter.Capabilities().CapturesOutput {
		return nil, errors.Wrap(ErrNoOutput, "tool status")
	}

	statuses := make([]ToolStatus, len(Tools))
	g, gctx := errgroup.WithContext(ctx)
	for i, tool := range Tools {
		g.Go(func() error {
			statuses[i] = ToolStatus{Name: tool}
			out, err := m.query(gctx, tool+" --version")
			if err != nil {
				m.logger.Debug("tool probe failed", "tool", tool, "error", err)
				return nil
			}
			statuses[i].Installed = true
			statuses[i].Version = toolVersion(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// toolVersion extracts "1.2.3" from outputs like "fnm 1.37.1" or "v20.11.0".
func toolVersion(out string) string {
	for _, field := range strings.Fields(out) {
		if v, err := versions.Normalize(field); err == nil {
			return v
		}
	}
	return strings.TrimSpace(out)
}
