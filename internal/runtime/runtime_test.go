package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/adapter/mocks"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/versions"
)

var noOpts = (*adapter.CommandOptions)(nil)

func newManager(t *testing.T, h host.Host) (*Manager, *mocks.MockAdapter) {
	t.Helper()
	m := mocks.NewMockAdapter(t)
	m.EXPECT().Capabilities().Return(host.DefaultCapabilities(h)).Maybe()
	return NewManager(m, WithLogger(logging.ForTest(t))), m
}

func TestListInstalled(t *testing.T) {
	mgr, m := newManager(t, host.Desktop)
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm list", noOpts).
		Return(mocks.Ok("* v18.19.0\n* v20.11.0 default\n* v16.2.0\n* system\n")).Once()
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm current", noOpts).
		Return(mocks.Ok("v18.19.0\n")).Once()

	got, err := mgr.ListInstalled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []versions.Record{
		{Version: "20.11.0", IsDefault: true},
		{Version: "18.19.0", IsActive: true},
		{Version: "16.2.0"},
	}, got)
}

func TestListInstalled_NoCurrent(t *testing.T) {
	mgr, m := newManager(t, host.Desktop)
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm list", noOpts).
		Return(mocks.Ok("* v20.11.0 default\n")).Once()
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm current", noOpts).
		Return(mocks.Ok("none\n")).Once()

	got, err := mgr.ListInstalled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []versions.Record{{Version: "20.11.0", IsDefault: true}}, got)
}

func TestListInstalled_CommandFails(t *testing.T) {
	mgr, m := newManager(t, host.Desktop)
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm list", noOpts).
		Return(mocks.Exit(127, "sh: fnm: not found")).Once()

	_, err := mgr.ListInstalled(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, adapter.ErrCommandFailed))
	assert.Contains(t, err.Error(), "fnm: not found")
}

func TestListRemote(t *testing.T) {
	mgr, m := newManager(t, host.Desktop)
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm list-remote --lts", noOpts).
		Return(mocks.Ok("v18.19.0 (Hydrogen)\nv20.11.0 (Iron)\n")).Once()

	got, err := mgr.ListRemote(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []versions.Record{{Version: "20.11.0"}, {Version: "18.19.0"}}, got)
}

func TestActions(t *testing.T) {
	installOpts := mock.MatchedBy(func(o *adapter.CommandOptions) bool {
		return o != nil && o.Timeout == InstallTimeout
	})

	tests := []struct {
		name    string
		call    func(*Manager) error
		command string
		opts    any
	}{
		{"install", func(m *Manager) error { return m.Install(context.Background(), "20") }, "fnm install 20", installOpts},
		{"install lts", func(m *Manager) error { return m.Install(context.Background(), "lts/iron") }, "fnm install lts/iron", installOpts},
		{"uninstall", func(m *Manager) error { return m.Uninstall(context.Background(), "v18.19.0") }, "fnm uninstall v18.19.0", noOpts},
		{"use", func(m *Manager) error { return m.Use(context.Background(), " 20.11 ") }, "fnm use 20.11", noOpts},
		{"default", func(m *Manager) error { return m.SetDefault(context.Background(), "latest") }, "fnm default latest", noOpts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, m := newManager(t, host.Desktop)
			m.EXPECT().ExecuteCommand(mock.Anything, tt.command, tt.opts).Return(mocks.Ok("")).Once()
			require.NoError(t, tt.call(mgr))
		})
	}
}

func TestActions_InvalidVersion(t *testing.T) {
	mgr, _ := newManager(t, host.Desktop)
	ctx := context.Background()

	for _, v := range []string{"", "20; rm -rf ~", "$(whoami)", "1.2.3.4", "lts/"} {
		err := mgr.Install(ctx, v)
		assert.True(t, errors.Is(err, ErrInvalidVersion), "Install(%q) = %v", v, err)
	}
}

func TestActions_ExtensionFireAndForget(t *testing.T) {
	mgr, m := newManager(t, host.Extension)
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm use 20", noOpts).Return(mocks.Ok("")).Once()

	require.NoError(t, mgr.Use(context.Background(), "20"))

	_, err := mgr.ListInstalled(context.Background())
	assert.True(t, errors.Is(err, ErrNoOutput))
}

func TestCapabilityAbsent_NoCommandIssued(t *testing.T) {
	mgr, m := newManager(t, host.Browser)
	ctx := context.Background()

	assert.False(t, mgr.Available())

	_, err := mgr.ListInstalled(ctx)
	assert.True(t, errors.Is(err, adapter.ErrNotSupported))
	_, err = mgr.ListRemote(ctx, false)
	assert.True(t, errors.Is(err, adapter.ErrNotSupported))
	_, err = mgr.Current(ctx)
	assert.True(t, errors.Is(err, adapter.ErrNotSupported))
	assert.True(t, errors.Is(mgr.Install(ctx, "20"), adapter.ErrNotSupported))
	assert.True(t, errors.Is(mgr.Use(ctx, "20"), adapter.ErrNotSupported))
	_, err = mgr.Status(ctx)
	assert.True(t, errors.Is(err, adapter.ErrNotSupported))

	m.AssertNotCalled(t, "ExecuteCommand", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatus(t *testing.T) {
	mgr, m := newManager(t, host.Desktop)
	m.EXPECT().ExecuteCommand(mock.Anything, "fnm --version", noOpts).Return(mocks.Ok("fnm 1.37.1\n")).Once()
	m.EXPECT().ExecuteCommand(mock.Anything, "node --version", noOpts).Return(mocks.Ok("v20.11.0\n")).Once()
	m.EXPECT().ExecuteCommand(mock.Anything, "npm --version", noOpts).Return(mocks.Exit(127, "npm: not found")).Once()

	got, err := mgr.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ToolStatus{
		{Name: "fnm", Installed: true, Version: "1.37.1"},
		{Name: "node", Installed: true, Version: "20.11.0"},
		{Name: "npm", Installed: false},
	}, got)
}

func TestToolVersion(t *testing.T) {
	assert.Equal(t, "10.2.4", toolVersion("10.2.4\n"))
	assert.Equal(t, "1.37.1", toolVersion("fnm 1.37.1"))
	assert.Equal(t, "dev-build", toolVersion(" dev-build "))
}
