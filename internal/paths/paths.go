package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name devdeck uses below the XDG base directories.
const AppName = "devdeck"

// File names of the documents devdeck reads and writes.
const (
	// ConfigFileName is the application configuration file.
	ConfigFileName = "config.yaml"

	// ServicesFileName is the service registry document.
	ServicesFileName = "services.json"

	// BrowserStoreFileName is the sqlite database backing the emulated
	// browser storage when running the browser host outside a browser.
	BrowserStoreFileName = "browser.db"
)

// claudeDirName is the assistant's per-user directory holding settings.json.
const claudeDirName = ".claude"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" path element with the user's home
// directory. Other paths, and paths when the home is unknown, are returned as is.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := ResolveHome()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// AppConfigDir returns the directory holding devdeck's own configuration.
// Returns: <ConfigHome>/devdeck/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// AppDataDir returns the directory holding devdeck's runtime data.
// Returns: <DataHome>/devdeck/
func AppDataDir() string {
	return filepath.Join(DataHome(), AppName)
}

// BrowserStorePath returns the default sqlite path for the emulated browser storage.
// Returns: <DataHome>/devdeck/browser.db
func BrowserStorePath() string {
	return filepath.Join(AppDataDir(), BrowserStoreFileName)
}

// SettingsPath returns the assistant settings file below the given home directory.
// Returns: <home>/.claude/settings.json, or an empty string for an empty home.
func SettingsPath(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, claudeDirName, "settings.json")
}

// ServicesPath returns the service registry file below the given app data directory.
// Returns: <appData>/devdeck/services.json, or an empty string for an empty appData.
func ServicesPath(appData string) string {
	if appData == "" {
		return ""
	}
	return filepath.Join(appData, AppName, ServicesFileName)
}
