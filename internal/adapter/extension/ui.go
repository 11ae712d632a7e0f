package extension

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/cli/prompt"
	"github.com/thoreinstein/devdeck/internal/errors"
)

// Window is the host windowing API.
//
// ShowMessage returns the label of the item the user picked, or "" when the
// message was dismissed. Modal messages block until answered.
type Window interface {
	ShowMessage(ctx context.Context, level adapter.MessageType, text string, modal bool, items []string) (string, error)
	OpenExternal(ctx context.Context, url string) error
}

// UI maps the adapter UI contract onto a Window.
type UI struct {
	window Window
}

var _ adapter.UI = (*UI)(nil)

var errNoWindow = errors.New("host window is not available")

// ShowMessage maps the picked label back to its index in the buttons. A
// dismissed confirm resolves to the last button, the negative choice.
func (u *UI) ShowMessage(ctx context.Context, msg adapter.Message) (int, error) {
	if u.window == nil {
		return -1, errNoWindow
	}

	text := msg.Text
	if msg.Title != "" {
		text = msg.Title
		if msg.Text != "" {
			text += ": " + msg.Text
		}
	}
	if msg.Detail != "" {
		text += "\n" + msg.Detail
	}

	if msg.Type != adapter.MessageConfirm {
		if _, err := u.window.ShowMessage(ctx, msg.Type, text, false, nil); err != nil {
			return -1, errors.Wrap(err, "show message")
		}
		return 0, nil
	}

	buttons := msg.ConfirmButtons()
	picked, err := u.window.ShowMessage(ctx, adapter.MessageConfirm, text, true, buttons)
	if err != nil {
		return -1, errors.Wrap(err, "show message")
	}
	if idx := slices.Index(buttons, picked); idx >= 0 {
		return idx, nil
	}
	return len(buttons) - 1, nil
}

func (u *UI) ShowNotification(ctx context.Context, n adapter.Notification) error {
	if u.window == nil {
		return errNoWindow
	}
	text := n.Title
	if n.Body != "" {
		text += ": " + n.Body
	}
	level := n.Level
	if level == "" {
		level = adapter.MessageInfo
	}
	if _, err := u.window.ShowMessage(ctx, level, text, false, nil); err != nil {
		return errors.Wrap(err, "show notification")
	}
	return nil
}

func (u *UI) OpenExternal(ctx context.Context, url string) error {
	if u.window == nil {
		return errNoWindow
	}
	if err := u.window.OpenExternal(ctx, url); err != nil {
		return errors.Wrapf(err, "open %s", url)
	}
	return nil
}

// StreamWindow is a Window over plain streams. Modal items are chosen with
// a numbered prompt; OpenExternal prints the URL for the user to follow.
type StreamWindow struct {
	In  io.Reader
	Out io.Writer
}

func (w StreamWindow) ShowMessage(_ context.Context, level adapter.MessageType, text string, modal bool, items []string) (string, error) {
	fmt.Fprintf(w.Out, "[%s] %s\n", level, text)
	if !modal || len(items) == 0 {
		return "", nil
	}
	idx, err := prompt.NewSelectorWithIO(w.In, w.Out).Choose("", items)
	if errors.Is(err, prompt.ErrSelectionCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return items[idx], nil
}

func (w StreamWindow) OpenExternal(_ context.Context, url string) error {
	_, err := fmt.Fprintf(w.Out, "Open in your browser: %s\n", url)
	return err
}
