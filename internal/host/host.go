// Package host defines the closed set of runtime environments devdeck runs
// under and the capabilities each one declares.
package host

import (
	"slices"
	"strings"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Host identifies a runtime environment.
type Host string

// Known hosts. The set is closed; adapters and pages reference these values only.
const (
	// Desktop is a full desktop process with process spawning and a real filesystem.
	Desktop Host = "desktop"

	// Extension is a sandboxed editor-extension host.
	Extension Host = "extension"

	// Browser is a browser sandbox with no filesystem or process access.
	Browser Host = "browser"
)

// ErrUnknownHost is returned when parsing a name that is not a known host.
var ErrUnknownHost = errors.New("unknown host")

// All returns every host in display order.
func All() []Host {
	return []Host{Desktop, Extension, Browser}
}

// Valid reports whether h is one of the known hosts.
func (h Host) Valid() bool {
	return slices.Contains(All(), h)
}

// String implements fmt.Stringer.
func (h Host) String() string {
	return string(h)
}

// DisplayName returns a human-readable name for h.
func (h Host) DisplayName() string {
	switch h {
	case Desktop:
		return "Desktop"
	case Extension:
		return "Editor extension"
	case Browser:
		return "Browser"
	default:
		return string(h)
	}
}

// Parse converts a case-insensitive name into a Host.
func Parse(name string) (Host, error) {
	h := Host(strings.ToLower(strings.TrimSpace(name)))
	if !h.Valid() {
		return "", errors.Wrapf(ErrUnknownHost, "%q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return h, nil
}

// Names returns the names of all hosts.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, h := range all {
		names[i] = string(h)
	}
	return names
}
