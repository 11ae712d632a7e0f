// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Sentinel errors for option selection.
var (
	ErrNoOptions          = errors.New("no options to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Chooser picks one of a list of labels and returns its zero-based index.
type Chooser interface {
	Choose(title string, labels []string) (int, error)
}

// Selector handles numbered selection prompts over plain line-based IO.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Choose prints labels as a numbered list and reads the user's choice.
//
// Returns:
//   - ErrNoOptions if labels is empty
//   - 0 when the user just presses enter
//   - ErrInvalidSelection if the input is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Choose(title string, labels []string) (int, error) {
	if len(labels) == 0 {
		return -1, ErrNoOptions
	}

	if title != "" {
		fmt.Fprintln(s.writer, title)
	}
	for i, l := range labels {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, l)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return -1, ErrSelectionCancelled
		}
		return -1, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return -1, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(labels) {
		return -1, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(labels))
	}

	return selection - 1, nil
}

// Fuzzy is a full-screen fuzzy finder chooser for interactive terminals.
type Fuzzy struct {
	// Preview renders the preview pane for the label at index i. Optional.
	Preview func(i int) string
}

// Choose opens the fuzzy finder over labels. Aborting (Esc, Ctrl+C) maps to
// ErrSelectionCancelled.
func (f Fuzzy) Choose(title string, labels []string) (int, error) {
	if len(labels) == 0 {
		return -1, ErrNoOptions
	}

	opts := []fuzzyfinder.Option{}
	if title != "" {
		opts = append(opts, fuzzyfinder.WithHeader(title))
	}
	if f.Preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return f.Preview(i)
		}))
	}

	idx, err := fuzzyfinder.Find(labels, func(i int) string { return labels[i] }, opts...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, ErrSelectionCancelled
		}
		return -1, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}
