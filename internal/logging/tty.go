package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File and wrappers exposing a descriptor.
type fder interface {
	Fd() uintptr
}

// IsTTY reports whether v (a reader or writer) is attached to a terminal.
func IsTTY(v any) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
// NO_COLOR (https://no-color.org) and TERM=dumb disable color; otherwise w
// must be a terminal.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
