package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/errors"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "devdeck", rootCmd.Use)
	for _, name := range []string{"host", "verbose", "quiet", "log-format", "log-file", "config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "--%s flag should be defined", name)
	}
	for _, name := range []string{"pages", "node", "provider", "services", "config", "version"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		assert.True(t, found, "%s command should be registered", name)
	}
}

func TestExecute_QuietAndVerbose(t *testing.T) {
	isolate(t)
	_, err := execute(t, nil, "", "version", "-q", "-v")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestExecute_InvalidHost(t *testing.T) {
	isolate(t)
	_, err := execute(t, nil, "", "pages", "list", "--host", "toaster")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestExecute_HiddenPageRefuses(t *testing.T) {
	isolate(t)
	a := browserApp(t, nil)

	_, err := execute(t, a, "", "node", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrPageUnavailable)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Contains(t, exitErr.Suggestion, "devdeck pages list")
}

func TestExecute_BrokenConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "config.yaml", "host: toaster\n")

	_, err := execute(t, nil, "", "pages", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)

	out, err := execute(t, nil, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "host: desktop")
}

func TestUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, errors.ExitSuccess},
		{"not supported", errors.Wrap(adapter.ErrNotSupported, "x"), errors.ExitUser},
		{"not found", errors.Wrap(errors.ErrNotFound, "x"), errors.ExitUser},
		{"command failed", errors.Wrap(adapter.ErrCommandFailed, "x"), errors.ExitSystem},
		{"other", errors.New("boom"), errors.ExitSystem},
		{"already exit error", errors.NewUserError(errors.New("u"), ""), errors.ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := userFacing(tt.err)
			assert.Equal(t, tt.code, errors.ExitCode(err))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
