package extension

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
)

type recordingTerminal struct {
	shown int
	sent  []string
	err   error
}

func (t *recordingTerminal) Show() { t.shown++ }

func (t *recordingTerminal) SendText(text string) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, text)
	return nil
}

type scriptedWindow struct {
	answer   string
	messages []string
	items    [][]string
	opened   []string
}

func (w *scriptedWindow) ShowMessage(_ context.Context, level adapter.MessageType, text string, modal bool, items []string) (string, error) {
	w.messages = append(w.messages, string(level)+":"+text)
	w.items = append(w.items, items)
	if !modal {
		return "", nil
	}
	return w.answer, nil
}

func (w *scriptedWindow) OpenExternal(_ context.Context, url string) error {
	w.opened = append(w.opened, url)
	return nil
}

func TestAdapter_Identity(t *testing.T) {
	a := New(WithProjectDir("/ws"))

	assert.Equal(t, host.Extension, a.Host())
	caps := a.Capabilities()
	assert.True(t, caps.CommandExecution)
	assert.False(t, caps.CapturesOutput)
	assert.True(t, caps.ProjectDir)

	dir, err := a.Environment().ProjectDir()
	require.NoError(t, err)
	assert.Equal(t, "/ws", dir)
}

func TestExecuteCommand_FireAndForget(t *testing.T) {
	term := &recordingTerminal{}
	opened := 0
	a := New(WithTerminals(func(name string) (Terminal, error) {
		opened++
		assert.Equal(t, TerminalName, name)
		return term, nil
	}))
	ctx := context.Background()

	res := a.ExecuteCommand(ctx, "fnm install 20", nil)
	assert.True(t, res.Success)
	assert.Empty(t, res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.Nil(t, res.Error)

	res = a.ExecuteCommand(ctx, "npm ci", &adapter.CommandOptions{
		Dir: "/ws/my app",
		Env: map[string]string{"B": "two words", "A": "1"},
	})
	assert.True(t, res.Success)

	assert.Equal(t, 1, opened, "terminal is created once and reused")
	assert.Equal(t, 2, term.shown)
	assert.Equal(t, []string{
		"fnm install 20",
		"cd '/ws/my app' && A=1 B='two words' npm ci",
	}, term.sent)
}

func TestExecuteCommand_TerminalUnavailable(t *testing.T) {
	ctx := context.Background()

	res := New().ExecuteCommand(ctx, "ls", nil)
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, adapter.CodeTerminalUnavailable, res.Error.Code)

	a := New(WithTerminals(func(string) (Terminal, error) { return nil, errors.New("denied") }))
	res = a.ExecuteCommand(ctx, "ls", nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, adapter.CodeTerminalUnavailable, res.Error.Code)

	term := &recordingTerminal{err: errors.New("disposed")}
	a = New(WithTerminals(func(string) (Terminal, error) { return term, nil }))
	res = a.ExecuteCommand(ctx, "ls", nil)
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, adapter.CodeTerminalUnavailable, res.Error.Code)
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"/usr/local/bin", "/usr/local/bin"},
		{"", "''"},
		{"two words", "'two words'"},
		{"it's", `'it'\''s'`},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileSystem(t *testing.T) {
	ctx := context.Background()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/ws", 0o755))
	fsys := New(WithFs(mem)).FileSystem()

	_, err := fsys.ReadFile(ctx, "/ws/missing.json")
	assert.True(t, errors.Is(err, adapter.ErrNotFound))

	require.NoError(t, fsys.WriteFile(ctx, "/ws/a.json", "{}"))
	got, err := fsys.ReadFile(ctx, "/ws/a.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	err = fsys.WriteFile(ctx, "/ws/deep/b.json", "{}")
	assert.True(t, errors.Is(err, adapter.ErrNotFound), "write must not create parents")

	assert.Error(t, fsys.Mkdir(ctx, "/ws/x/y", false))
	require.NoError(t, fsys.Mkdir(ctx, "/ws/x/y", true))
	require.NoError(t, fsys.Mkdir(ctx, "/ws/x/y", true))
	require.NoError(t, fsys.WriteFile(ctx, "/ws/x/y/z.txt", "z"))

	names, err := fsys.ReadDir(ctx, "/ws")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "x"}, names)

	assert.Error(t, fsys.Delete(ctx, "/ws/x", false))
	require.NoError(t, fsys.Delete(ctx, "/ws/x", true))
	ok, err := fsys.Exists(ctx, "/ws/x/y/z.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fsys.Delete(ctx, "/ws/a.json", false))
	assert.True(t, errors.Is(fsys.Delete(ctx, "/ws/a.json", false), adapter.ErrNotFound))
}

func TestEnvironment(t *testing.T) {
	seed := map[string]string{"HOME": "/home/dev", "EMPTY": ""}
	a := New(WithEnv(seed), WithStorageDir("/storage"))
	env := a.Environment()

	v, ok := env.Get("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)
	_, ok = env.Get("UNSET")
	assert.False(t, ok)

	require.NoError(t, env.Set("NEW", "x"))
	_, ok = seed["NEW"]
	assert.False(t, ok, "seed map must not be mutated")

	home, err := env.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/dev", home)

	dir, err := env.AppDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/storage", dir)

	_, err = New().Environment().UserHomeDir()
	assert.Error(t, err)
}

func TestUI_ConfirmNormalisesToIndex(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{name: "affirmative", answer: "Install", want: 0},
		{name: "negative", answer: "Skip", want: 1},
		{name: "dismissed", answer: "", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &scriptedWindow{answer: tt.answer}
			ui := New(WithWindow(w)).UI()

			idx, err := ui.ShowMessage(ctx, adapter.Message{
				Type:    adapter.MessageConfirm,
				Title:   "Install node 20?",
				Buttons: []string{"Install", "Skip"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)
			assert.Equal(t, []string{"Install", "Skip"}, w.items[0])
		})
	}
}

func TestUI_MessagesAndLinks(t *testing.T) {
	ctx := context.Background()
	w := &scriptedWindow{}
	ui := New(WithWindow(w)).UI()

	idx, err := ui.ShowMessage(ctx, adapter.Message{Type: adapter.MessageWarning, Title: "Heads up", Text: "fnm missing"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	require.NoError(t, ui.ShowNotification(ctx, adapter.Notification{Title: "Done"}))
	require.NoError(t, ui.OpenExternal(ctx, "https://github.com/Schniz/fnm"))

	assert.Equal(t, []string{"warning:Heads up: fnm missing", "info:Done"}, w.messages)
	assert.Equal(t, []string{"https://github.com/Schniz/fnm"}, w.opened)

	_, err = New().UI().ShowMessage(ctx, adapter.Message{Text: "x"})
	assert.Error(t, err)
}

func TestStreamGlue(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	a := New(
		WithWindow(StreamWindow{In: strings.NewReader("2\n"), Out: &out}),
		WithTerminals(func(string) (Terminal, error) { return StreamTerminal{W: &out}, nil }),
	)

	idx, err := a.UI().ShowMessage(ctx, adapter.Message{Type: adapter.MessageConfirm, Title: "Proceed?"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	res := a.ExecuteCommand(ctx, "fnm use 20", nil)
	assert.True(t, res.Success)
	assert.Contains(t, out.String(), "$ fnm use 20")
}
