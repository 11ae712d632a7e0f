package desktop

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"runtime"

	"github.com/fatih/color"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/cli/prompt"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// UI renders messages on the terminal and collects confirm answers through a
// prompt.Chooser: a fuzzy finder when attached to a terminal, a numbered
// list otherwise.
type UI struct {
	in      io.Reader
	out     io.Writer
	chooser prompt.Chooser
	opener  func(url string) []string
	logger  *slog.Logger
}

var _ adapter.UI = (*UI)(nil)

var (
	infoColor    = color.New(color.FgCyan, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	confirmColor = color.New(color.FgMagenta, color.Bold)
)

func (u *UI) ShowMessage(_ context.Context, msg adapter.Message) (int, error) {
	label, c := styleFor(msg.Type)
	if logging.SupportsColor(u.out) {
		label = c.Sprint(label)
	}

	header := msg.Title
	if header == "" {
		header = msg.Text
	}
	fmt.Fprintf(u.out, "%s %s\n", label, header)
	if msg.Title != "" && msg.Text != "" {
		fmt.Fprintf(u.out, "  %s\n", msg.Text)
	}
	if msg.Detail != "" {
		fmt.Fprintf(u.out, "  %s\n", msg.Detail)
	}

	if msg.Type != adapter.MessageConfirm {
		return 0, nil
	}

	idx, err := u.choose("", msg.ConfirmButtons())
	if err != nil {
		return -1, errors.Wrap(err, "confirm")
	}
	return idx, nil
}

func (u *UI) choose(title string, labels []string) (int, error) {
	if u.chooser != nil {
		return u.chooser.Choose(title, labels)
	}
	if logging.IsTTY(u.in) && logging.IsTTY(u.out) {
		return prompt.Fuzzy{}.Choose(title, labels)
	}
	return prompt.NewSelectorWithIO(u.in, u.out).Choose(title, labels)
}

func (u *UI) ShowNotification(_ context.Context, n adapter.Notification) error {
	label, c := styleFor(n.Level)
	if logging.SupportsColor(u.out) {
		label = c.Sprint(label)
	}
	if n.Body == "" {
		fmt.Fprintf(u.out, "%s %s\n", label, n.Title)
		return nil
	}
	fmt.Fprintf(u.out, "%s %s: %s\n", label, n.Title, n.Body)
	return nil
}

// OpenExternal launches the platform URL opener. Only absolute http, https
// and mailto URLs are accepted.
func (u *UI) OpenExternal(_ context.Context, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "parse url %q", raw)
	}
	switch parsed.Scheme {
	case "http", "https", "mailto":
	default:
		return errors.Newf("refusing to open url with scheme %q", parsed.Scheme)
	}

	argv := u.opener(raw)
	u.logger.Debug("opening url", "url", raw, "opener", argv[0])

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "open %s", raw)
	}
	// The opener detaches; reap it without blocking the caller.
	go func() { _ = cmd.Wait() }()
	return nil
}

func defaultOpener(raw string) []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open", raw}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", raw}
	default:
		if browser := os.Getenv("BROWSER"); browser != "" {
			return []string{browser, raw}
		}
		return []string{"xdg-open", raw}
	}
}

func styleFor(t adapter.MessageType) (string, *color.Color) {
	switch t {
	case adapter.MessageWarning:
		return "!", warningColor
	case adapter.MessageError:
		return "✗", errorColor
	case adapter.MessageConfirm:
		return "?", confirmColor
	default:
		return "i", infoColor
	}
}
