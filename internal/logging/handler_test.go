package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devdeck/internal/errors"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("resolved pages", "host", "desktop", "count", 4)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "resolved pages")
	assert.Contains(t, out, "host=desktop")
	assert.Contains(t, out, "count=4")
	assert.Contains(t, out, now.Format(time.Kitchen))
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).
		With("host", "browser").
		WithGroup("cmd").
		With("name", "fnm")

	logger.Info("executing", "timeout", "30s")

	out := buf.String()
	assert.Contains(t, out, "host=browser")
	assert.Contains(t, out, "cmd.name=fnm")
	assert.Contains(t, out, "cmd.timeout=30s")
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := t.Context()

	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "spawn")

	assert.Contains(t, buf.String(), "TRACE spawn")
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	require.NoError(t, h.Handle(t.Context(), r))

	assert.True(t, strings.HasPrefix(buf.String(), "INFO"), "got %q", buf.String())
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("provider applied",
		"ANTHROPIC_AUTH_TOKEN", "secret12345",
		"base_url", "https://api.deepseek.com/anthropic",
		"value", "sk-abcdefgh",
	)

	out := buf.String()
	assert.NotContains(t, out, "secret12345")
	assert.Contains(t, out, "ANTHROPIC_AUTH_TOKEN=****2345")
	assert.Contains(t, out, "base_url=https://api.deepseek.com/anthropic")
	assert.Contains(t, out, "value=****efgh")
}

func TestMultiHandler(t *testing.T) {
	var text, jsonOut bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&jsonOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("host", "extension")

	logger.Debug("debug only in json")
	logger.Warn("both")

	assert.NotContains(t, text.String(), "debug only in json")
	assert.Contains(t, text.String(), "both")
	assert.Contains(t, jsonOut.String(), `"msg":"debug only in json"`)
	assert.Contains(t, jsonOut.String(), `"host":"extension"`)
	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestMultiHandler_JoinsErrors(t *testing.T) {
	var ok bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(failingWriter{}, nil),
		NewHandler(&ok, nil),
		slog.NewJSONHandler(failingWriter{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "services imported", 0)
	err := h.Handle(t.Context(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, ok.String(), "services imported", "later handlers still run")

	require.NoError(t, NewMultiHandler(NewHandler(&ok, nil)).Handle(t.Context(), r))
}
