// Package paths provides path resolution for devdeck's own files and the
// documents it manages.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
// On Linux and macOS, paths follow XDG conventions (~/.config,
// ~/.local/share, ~/.cache).
//
// Functions that derive a document path from a base directory take the base
// as a parameter instead of resolving it themselves, because on sandboxed
// hosts the home and app-data directories come from the platform adapter
// rather than from the operating system:
//
//	paths.SettingsPath(env.UserHomeDir())  // <home>/.claude/settings.json
//	paths.ServicesPath(env.AppDataDir())   // <appData>/devdeck/services.json
package paths
