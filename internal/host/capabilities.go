package host

import "strings"

// Capabilities is the explicit capability set carried alongside an adapter.
// Callers check it before invoking an optional operation instead of probing
// for the operation at call time.
type Capabilities struct {
	// CommandExecution is true when arbitrary commands can be executed.
	CommandExecution bool

	// CapturesOutput is true when command stdout/stderr are returned to the caller.
	CapturesOutput bool

	// FileSystemAccess is true when the host has a real or host-provided filesystem,
	// as opposed to one emulated over a key-value store.
	FileSystemAccess bool

	// ProjectDir is true when the host has a concept of an open project.
	ProjectDir bool
}

// Requirement names a capability a page or operation depends on.
type Requirement string

// Requirements understood by Capabilities.Satisfies.
const (
	RequireCommandExecution Requirement = "command-execution"
	RequireFileSystemAccess Requirement = "filesystem-access"
	RequireProjectDir       Requirement = "project-dir"
)

// Has reports whether the capability behind r is present.
func (c Capabilities) Has(r Requirement) bool {
	switch r {
	case RequireCommandExecution:
		return c.CommandExecution
	case RequireFileSystemAccess:
		return c.FileSystemAccess
	case RequireProjectDir:
		return c.ProjectDir
	default:
		return false
	}
}

// Satisfies reports whether every requirement is present.
func (c Capabilities) Satisfies(reqs ...Requirement) bool {
	for _, r := range reqs {
		if !c.Has(r) {
			return false
		}
	}
	return true
}

// String lists the present capabilities, e.g. "command-execution,filesystem-access".
func (c Capabilities) String() string {
	var parts []string
	for _, r := range []Requirement{RequireCommandExecution, RequireFileSystemAccess, RequireProjectDir} {
		if c.Has(r) {
			parts = append(parts, string(r))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// DefaultCapabilities returns the capability set each host declares.
func DefaultCapabilities(h Host) Capabilities {
	switch h {
	case Desktop:
		return Capabilities{CommandExecution: true, CapturesOutput: true, FileSystemAccess: true}
	case Extension:
		return Capabilities{CommandExecution: true, FileSystemAccess: true, ProjectDir: true}
	default:
		return Capabilities{}
	}
}
