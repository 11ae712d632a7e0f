// Package config provides configuration management for devdeck using Viper.
package config

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/internal/paths"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// CurrentVersion is the newest config file version this build understands.
const CurrentVersion = 1

// FileName is the config file name without extension.
const FileName = "config"

// DefaultBrowserStore selects the per-user sqlite file for browser.store.
const DefaultBrowserStore = "default"

// Config represents the top-level configuration structure.
type Config struct {
	Version        int             `mapstructure:"version" yaml:"version"`
	Host           string          `mapstructure:"host" yaml:"host"`
	CommandTimeout time.Duration   `mapstructure:"command_timeout" yaml:"command_timeout"`
	Pages          PagesConfig     `mapstructure:"pages" yaml:"pages"`
	Browser        BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Extension      ExtensionConfig `mapstructure:"extension" yaml:"extension"`

	// SettingsPath overrides <home>/.claude/settings.json.
	SettingsPath string `mapstructure:"settings_path" yaml:"settings_path,omitempty"`

	// ServicesPath overrides <appData>/devdeck/services.json.
	ServicesPath string `mapstructure:"services_path" yaml:"services_path,omitempty"`
}

// PagesConfig holds page visibility settings. File names an optional page
// config document (JSON, YAML or TOML) merged over the inline lists.
type PagesConfig struct {
	pages.Config `mapstructure:",squash" yaml:",inline"`

	File string `mapstructure:"file" yaml:"file,omitempty"`
}

// BrowserConfig configures the browser host.
type BrowserConfig struct {
	// Store is a sqlite database path, or DefaultBrowserStore for the
	// per-user database. Empty keeps storage in memory.
	Store     string `mapstructure:"store" yaml:"store"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// ExtensionConfig configures the extension host.
type ExtensionConfig struct {
	// Workspace is the directory exposed as the extension's project.
	Workspace string `mapstructure:"workspace" yaml:"workspace"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:        CurrentVersion,
		Host:           string(host.Desktop),
		CommandTimeout: adapter.DefaultCommandTimeout,
		Browser:        BrowserConfig{Namespace: paths.AppName},
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Calling it again resets any earlier state.
func Init() {
	viper.Reset()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	// DEVDECK_BROWSER_STORE maps to browser.store.
	viper.SetEnvPrefix("DEVDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("host", d.Host)
	viper.SetDefault("command_timeout", d.CommandTimeout)
	viper.SetDefault("pages.enabled_pages", []string{})
	viper.SetDefault("pages.disabled_pages", []string{})
	viper.SetDefault("pages.file", "")
	viper.SetDefault("browser.store", "")
	viper.SetDefault("browser.namespace", d.Browser.Namespace)
	viper.SetDefault("extension.workspace", "")
	viper.SetDefault("settings_path", "")
	viper.SetDefault("services_path", "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, it searches the default locations and
// falls back to defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "" && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		case errors.As(err, &notFound):
			// Implicit load without a file uses defaults.
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if cfg.Pages.File != "" {
		file := cfg.Pages.File
		if !filepath.IsAbs(file) && viper.ConfigFileUsed() != "" {
			file = filepath.Join(filepath.Dir(viper.ConfigFileUsed()), file)
		}
		extra, err := pages.LoadConfigFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "loading page config")
		}
		cfg.Pages.merge(extra)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	return &cfg, nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return newValidationError(errs)
	}
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

// DefaultPath returns the config file written by "config init".
func DefaultPath() string {
	return filepath.Join(paths.AppConfigDir(), paths.ConfigFileName)
}

// ConfigFileUsed returns the file Load read, or "" when defaults were used.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// HostValue returns the configured host.
func (c *Config) HostValue() host.Host {
	h, err := host.Parse(c.Host)
	if err != nil {
		return host.Desktop
	}
	return h
}

// merge appends extra's lists to p.
func (p *PagesConfig) merge(extra *pages.Config) {
	p.EnabledPages = append(p.EnabledPages, extra.EnabledPages...)
	p.DisabledPages = append(p.DisabledPages, extra.DisabledPages...)
	p.CustomPages = append(p.CustomPages, extra.CustomPages...)
}
