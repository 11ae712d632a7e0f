package extension

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
)

// Terminal is an integrated terminal owned by the host.
type Terminal interface {
	// Show reveals the terminal panel.
	Show()

	// SendText types text into the terminal followed by a newline.
	SendText(text string) error
}

// TerminalFactory opens a named integrated terminal.
type TerminalFactory func(name string) (Terminal, error)

// ExecuteCommand sends command to the adapter's integrated terminal, opening
// it on first use. The result only reports delivery: Success is true once
// the text was sent and Stdout and Stderr are always empty.
func (a *Adapter) ExecuteCommand(ctx context.Context, command string, opts *adapter.CommandOptions) adapter.CommandResult {
	if err := ctx.Err(); err != nil {
		return adapter.Failure(adapter.CodeTimeout, "%v", err)
	}

	term, err := a.openTerminal()
	if err != nil {
		a.logger.Debug("terminal unavailable", "error", err)
		return adapter.Failure(adapter.CodeTerminalUnavailable, "%v", err)
	}

	line := terminalLine(command, opts)
	term.Show()
	if err := term.SendText(line); err != nil {
		return adapter.Failure(adapter.CodeTerminalUnavailable, "send to terminal: %v", err)
	}

	a.logger.Debug("sent command to terminal", "command", command)
	return adapter.CommandResult{Success: true}
}

func (a *Adapter) openTerminal() (Terminal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.terminal != nil {
		return a.terminal, nil
	}
	if a.terminals == nil {
		return nil, errors.New("no terminal support in this host")
	}
	t, err := a.terminals(TerminalName)
	if err != nil {
		return nil, err
	}
	a.terminal = t
	return t, nil
}

// terminalLine prefixes command with a directory change and environment
// assignments so the terminal runs it where and how the caller asked.
func terminalLine(command string, opts *adapter.CommandOptions) string {
	if opts == nil {
		return command
	}

	var b strings.Builder
	if opts.Dir != "" {
		b.WriteString("cd ")
		b.WriteString(shellQuote(opts.Dir))
		b.WriteString(" && ")
	}
	for _, k := range slices.Sorted(maps.Keys(opts.Env)) {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(shellQuote(opts.Env[k]))
		b.WriteByte(' ')
	}
	b.WriteString(command)
	return b.String()
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r == '/' || r == '.' || r == '-' || r == '_' || r == ':' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// StreamTerminal is a Terminal that writes each command line to a stream.
// It stands in for an integrated terminal when the extension adapter runs
// outside an editor.
type StreamTerminal struct {
	W io.Writer
}

func (t StreamTerminal) Show() {}

func (t StreamTerminal) SendText(text string) error {
	_, err := fmt.Fprintf(t.W, "$ %s\n", text)
	return err
}
