package browser

import (
	"context"
	"fmt"
	"io"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/cli/prompt"
	"github.com/thoreinstein/devdeck/internal/errors"
)

// Window is the subset of the browser window API the adapter uses.
type Window interface {
	Alert(ctx context.Context, text string) error
	Confirm(ctx context.Context, text string) (bool, error)
	Open(ctx context.Context, url string) error
}

// UI maps the adapter UI contract onto a Window.
type UI struct {
	window Window
}

var _ adapter.UI = (*UI)(nil)

var errNoWindow = errors.New("browser window is not available")

// ShowMessage maps a yes/no confirm onto button indices: true is the first
// button, false the last.
func (u *UI) ShowMessage(ctx context.Context, msg adapter.Message) (int, error) {
	if u.window == nil {
		return -1, errNoWindow
	}

	text := msg.Title
	if text == "" {
		text = msg.Text
	} else if msg.Text != "" {
		text += "\n\n" + msg.Text
	}
	if msg.Detail != "" {
		text += "\n\n" + msg.Detail
	}

	if msg.Type != adapter.MessageConfirm {
		if err := u.window.Alert(ctx, text); err != nil {
			return -1, errors.Wrap(err, "alert")
		}
		return 0, nil
	}

	ok, err := u.window.Confirm(ctx, text)
	if err != nil {
		return -1, errors.Wrap(err, "confirm")
	}
	if ok {
		return 0, nil
	}
	return len(msg.ConfirmButtons()) - 1, nil
}

func (u *UI) ShowNotification(ctx context.Context, n adapter.Notification) error {
	if u.window == nil {
		return errNoWindow
	}
	text := n.Title
	if n.Body != "" {
		text += ": " + n.Body
	}
	return errors.Wrap(u.window.Alert(ctx, text), "notify")
}

func (u *UI) OpenExternal(ctx context.Context, url string) error {
	if u.window == nil {
		return errNoWindow
	}
	return errors.Wrapf(u.window.Open(ctx, url), "open %s", url)
}

// StreamWindow is a Window over plain streams.
type StreamWindow struct {
	In  io.Reader
	Out io.Writer
}

func (w StreamWindow) Alert(_ context.Context, text string) error {
	_, err := fmt.Fprintln(w.Out, text)
	return err
}

// Confirm offers OK and Cancel; cancelling the prompt counts as Cancel.
func (w StreamWindow) Confirm(_ context.Context, text string) (bool, error) {
	idx, err := prompt.NewSelectorWithIO(w.In, w.Out).Choose(text, []string{"OK", "Cancel"})
	if errors.Is(err, prompt.ErrSelectionCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

func (w StreamWindow) Open(_ context.Context, url string) error {
	_, err := fmt.Fprintf(w.Out, "Open in your browser: %s\n", url)
	return err
}
