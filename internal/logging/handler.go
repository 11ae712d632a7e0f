package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/thoreinstein/devdeck/internal/redact"
)

// palette colours the parts of a line. A nil palette prints plain text.
type palette struct {
	time, key                        *color.Color
	trace, debug, info, warn, errorC *color.Color
}

func newPalette() *palette {
	return &palette{
		time:   color.New(color.FgHiBlack),
		key:    color.New(color.FgCyan),
		trace:  color.New(color.FgHiBlack),
		debug:  color.New(color.FgMagenta),
		info:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		errorC: color.New(color.FgRed, color.Bold),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	if p == nil {
		return nil
	}
	switch {
	case l >= slog.LevelError:
		return p.errorC
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	}
	return p.trace
}

// Handler is a slog.Handler writing one compact line per record, coloured
// when the writer is a terminal. Credential-looking attribute values are
// masked with package redact.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
	colors *palette
}

// NewHandler returns a Handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h := &Handler{opts: *opts, out: out, mu: &sync.Mutex{}}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record as: time level message key=value...
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.paint(h.timeColor(), r.Time.Format(time.Kitchen)))
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "%-5s ", h.levelString(r.Level))
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) levelString(level slog.Level) string {
	name := level.String()
	if level < slog.LevelDebug {
		name = "TRACE"
	}
	return h.paint(h.colors.level(level), name)
}

func (h *Handler) timeColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.time
}

func (h *Handler) keyColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.key
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, key+".", ga)
		}
		return
	}

	var value string
	if a.Value.Kind() == slog.KindString {
		value = redact.Pair(a.Key, a.Value.String())
	} else {
		value = fmt.Sprint(a.Value.Any())
		if redact.SensitiveKey(a.Key) {
			value = redact.Value(value)
		}
	}

	fmt.Fprintf(b, " %s=%s", h.paint(h.keyColor(), key), value)
}

// WithAttrs returns a new Handler with the given attributes.
// Attributes are qualified with the groups opened so far.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler that prefixes subsequent keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}
