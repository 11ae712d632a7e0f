// Package adapter defines the platform adapter contract that every host
// implements and every domain service consumes.
//
// An [Adapter] bundles a host identity, an explicit capability set and four
// capability groups: [FileSystem], [Environment], [UI] and command execution.
// Exactly one adapter is constructed per process, at bootstrap, and shared
// read-only by all services. Host variants live in the desktop, extension
// and browser sub-packages.
//
// # Capability-absent results
//
// Command execution never returns a Go error. A host that cannot run
// commands returns [NotSupported], a CommandResult whose error code is
// [CodeNotSupported]. Services translate that sentinel into
// [ErrNotSupported] so callers can render guidance instead of failing hard:
//
//	res := a.ExecuteCommand(ctx, "fnm --version", nil)
//	if err := res.Err(); errors.Is(err, adapter.ErrNotSupported) {
//	    // show "not available on this host"
//	}
//
// # Optional operations
//
// Operations that only some hosts support, such as
// [Environment.ProjectDir], must be guarded by checking
// [Adapter.Capabilities] first. Calling them on a host that lacks the
// capability returns ErrNotSupported.
package adapter
