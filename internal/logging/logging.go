package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format selects the log encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// LevelTrace sits below Debug and records captured command output.
const LevelTrace = slog.LevelDebug - 4

// Config describes a logger: minimum level, encoding and destination
// (stderr when Output is nil).
type Config struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	return slog.New(NewFormatHandler(cfg))
}

// NewFormatHandler returns the handler behind New so it can be combined
// with NewMultiHandler. Unknown formats fall back to text.
func NewFormatHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatJSON {
		return slog.NewJSONHandler(out, opts)
	}
	return NewHandler(out, opts)
}

// NewDiscard returns a logger that drops every record.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromVerbosity maps repeated -v flags to a level: none is Warn, then
// Info, Debug and finally Trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	}
	return LevelTrace
}

type ctxKey struct{}

// NewContext attaches logger to ctx.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

type tbWriter struct{ tb testing.TB }

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a trace-level logger writing through t.Log, so output
// shows only for failing tests or with -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{Level: LevelTrace, Output: tbWriter{tb: t}})
}
