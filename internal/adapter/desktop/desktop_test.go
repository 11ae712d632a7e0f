package desktop

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping: relies on a POSIX shell")
	}
}

func TestAdapter_Identity(t *testing.T) {
	a := New()

	assert.Equal(t, host.Desktop, a.Host())
	caps := a.Capabilities()
	assert.True(t, caps.CommandExecution)
	assert.True(t, caps.CapturesOutput)
	assert.True(t, caps.FileSystemAccess)
	assert.False(t, caps.ProjectDir)
}

func TestExecuteCommand(t *testing.T) {
	skipOnWindows(t)

	a := New(WithLogger(logging.ForTest(t)), WithEnviron([]string{"PATH=" + os.Getenv("PATH")}))
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		res := a.ExecuteCommand(ctx, "echo hello", nil)
		assert.True(t, res.Success)
		assert.Equal(t, "hello", res.Output())
		assert.Equal(t, 0, res.ExitCode)
		assert.Nil(t, res.Error)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		res := a.ExecuteCommand(ctx, "echo oops >&2; exit 3", nil)
		assert.False(t, res.Success)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "oops\n", res.Stderr)
		require.NotNil(t, res.Error)
		assert.Equal(t, adapter.CodeExitStatus, res.Error.Code)
	})

	t.Run("working directory", func(t *testing.T) {
		dir := t.TempDir()
		res := a.ExecuteCommand(ctx, "pwd", &adapter.CommandOptions{Dir: dir})
		require.True(t, res.Success, res.Stderr)
		want, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(res.Output())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("option env overrides overlay", func(t *testing.T) {
		require.NoError(t, a.Environment().Set("DEVDECK_A", "overlay"))
		require.NoError(t, a.Environment().Set("DEVDECK_B", "overlay"))
		res := a.ExecuteCommand(ctx, `printf '%s %s' "$DEVDECK_A" "$DEVDECK_B"`,
			&adapter.CommandOptions{Env: map[string]string{"DEVDECK_B": "option"}})
		require.True(t, res.Success, res.Stderr)
		assert.Equal(t, "overlay option", res.Stdout)
	})

	t.Run("timeout", func(t *testing.T) {
		start := time.Now()
		res := a.ExecuteCommand(ctx, "sleep 5", &adapter.CommandOptions{Timeout: 100 * time.Millisecond})
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
		assert.Equal(t, adapter.CodeTimeout, res.Error.Code)
		assert.Less(t, time.Since(start), 4*time.Second)
	})

	t.Run("spawn failure", func(t *testing.T) {
		res := a.ExecuteCommand(ctx, "echo hi", &adapter.CommandOptions{Dir: filepath.Join(t.TempDir(), "missing")})
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
		assert.Equal(t, adapter.CodeSpawnFailed, res.Error.Code)
	})
}

func TestFileSystem(t *testing.T) {
	ctx := context.Background()
	fsys := New().FileSystem()
	dir := t.TempDir()

	path := filepath.Join(dir, "a.txt")

	_, err := fsys.ReadFile(ctx, path)
	assert.True(t, errors.Is(err, adapter.ErrNotFound), "got %v", err)

	ok, err := fsys.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fsys.WriteFile(ctx, path, "one"))
	got, err := fsys.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, fsys.WriteFile(ctx, path, "two"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	deep := filepath.Join(dir, "x", "y", "z.txt")
	assert.Error(t, fsys.WriteFile(ctx, deep, "no parents"))

	require.NoError(t, fsys.Mkdir(ctx, filepath.Join(dir, "x", "y"), true))
	require.NoError(t, fsys.Mkdir(ctx, filepath.Join(dir, "x", "y"), true))
	require.NoError(t, fsys.WriteFile(ctx, deep, "deep"))

	names, err := fsys.ReadDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "x"}, names)

	assert.Error(t, fsys.Delete(ctx, filepath.Join(dir, "x"), false))
	require.NoError(t, fsys.Delete(ctx, filepath.Join(dir, "x"), true))
	ok, err = fsys.Exists(ctx, filepath.Join(dir, "x"))
	require.NoError(t, err)
	assert.False(t, ok)

	err = fsys.Delete(ctx, filepath.Join(dir, "x"), true)
	assert.True(t, errors.Is(err, adapter.ErrNotFound))

	_, err = fsys.ReadDir(ctx, filepath.Join(dir, "nope"))
	assert.True(t, errors.Is(err, adapter.ErrNotFound))
}

func TestEnvironment(t *testing.T) {
	a := New(WithEnviron([]string{"HOME=/home/dev", "EMPTY=", "XDG_CONFIG_HOME=/cfg", "malformed"}))
	env := a.Environment()

	v, ok := env.Get("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = env.Get("UNSET")
	assert.False(t, ok)

	require.NoError(t, env.Set("NEW", "1"))
	v, ok = env.Get("NEW")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Error(t, env.Set("BAD=KEY", "x"))

	all := env.All()
	all["NEW"] = "mutated"
	v, _ = env.Get("NEW")
	assert.Equal(t, "1", v, "All must return a copy")

	home, err := env.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/dev", home)

	appData, err := env.AppDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/cfg", appData)

	_, err = env.ProjectDir()
	assert.True(t, errors.Is(err, adapter.ErrNotSupported))
}

func TestUI_ShowMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("info", func(t *testing.T) {
		var out bytes.Buffer
		ui := New(WithIO(strings.NewReader(""), &out)).UI()

		idx, err := ui.ShowMessage(ctx, adapter.Message{Type: adapter.MessageInfo, Title: "Saved", Text: "settings written"})
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
		assert.Contains(t, out.String(), "Saved")
		assert.Contains(t, out.String(), "settings written")
	})

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "affirmative", input: "1\n", want: 0},
		{name: "default", input: "\n", want: 0},
		{name: "negative", input: "2\n", want: 1},
	}
	for _, tt := range tests {
		t.Run("confirm "+tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ui := New(WithIO(strings.NewReader(tt.input), &out)).UI()

			idx, err := ui.ShowMessage(ctx, adapter.Message{
				Type:    adapter.MessageConfirm,
				Title:   "Uninstall 18.19.0?",
				Buttons: []string{"Uninstall", "Keep"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)
			assert.Contains(t, out.String(), "[1] Uninstall")
		})
	}

	t.Run("confirm cancelled", func(t *testing.T) {
		var out bytes.Buffer
		ui := New(WithIO(strings.NewReader(""), &out)).UI()

		_, err := ui.ShowMessage(ctx, adapter.Message{Type: adapter.MessageConfirm, Title: "Sure?"})
		assert.Error(t, err)
	})
}

type fixedChooser int

func (c fixedChooser) Choose(string, []string) (int, error) { return int(c), nil }

func TestUI_WithChooser(t *testing.T) {
	var out bytes.Buffer
	ui := New(WithIO(strings.NewReader(""), &out), WithChooser(fixedChooser(1))).UI()

	idx, err := ui.ShowMessage(context.Background(), adapter.Message{Type: adapter.MessageConfirm, Title: "Sure?"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestUI_ShowNotification(t *testing.T) {
	var out bytes.Buffer
	ui := New(WithIO(strings.NewReader(""), &out)).UI()

	require.NoError(t, ui.ShowNotification(context.Background(), adapter.Notification{Title: "Installed", Body: "node 20.11.0"}))
	assert.Contains(t, out.String(), "Installed: node 20.11.0")
}

func TestUI_OpenExternal(t *testing.T) {
	var opened []string
	ui := New(WithOpener(func(url string) []string {
		opened = append(opened, url)
		return []string{"true"}
	})).UI()
	ctx := context.Background()

	assert.Error(t, ui.OpenExternal(ctx, "file:///etc/passwd"))
	assert.Error(t, ui.OpenExternal(ctx, "javascript:alert(1)"))
	assert.Empty(t, opened)

	skipOnWindows(t)
	require.NoError(t, ui.OpenExternal(ctx, "https://nodejs.org"))
	assert.Equal(t, []string{"https://nodejs.org"}, opened)
}
