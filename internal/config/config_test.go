package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
)

// chdir moves into an empty directory and points the XDG config home at it
// so no real config.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestInit(t *testing.T) {
	chdir(t)
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("host"); got != "desktop" {
		t.Errorf("expected host default desktop, got %q", got)
	}
	if got := viper.GetDuration("command_timeout"); got != time.Minute {
		t.Errorf("expected command_timeout default 1m, got %v", got)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	chdir(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.HostValue() != host.Desktop {
		t.Errorf("HostValue() = %v, want desktop", cfg.HostValue())
	}
	if cfg.Browser.Namespace != "devdeck" {
		t.Errorf("Browser.Namespace = %q, want devdeck", cfg.Browser.Namespace)
	}
	if ConfigFileUsed() != "" {
		t.Errorf("ConfigFileUsed() = %q, want empty", ConfigFileUsed())
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := chdir(t)
	p := writeConfig(t, dir, `host: browser
command_timeout: 30s
pages:
  disabled_pages: [about]
  custom_pages:
    - id: docs
      name: Docs
      type: page
      platforms: [browser]
      order: 7
browser:
  store: /tmp/store.db
  namespace: team
`)

	Init()
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HostValue() != host.Browser {
		t.Errorf("HostValue() = %v, want browser", cfg.HostValue())
	}
	if cfg.CommandTimeout != 30*time.Second {
		t.Errorf("CommandTimeout = %v, want 30s", cfg.CommandTimeout)
	}
	if len(cfg.Pages.DisabledPages) != 1 || cfg.Pages.DisabledPages[0] != "about" {
		t.Errorf("DisabledPages = %v, want [about]", cfg.Pages.DisabledPages)
	}
	if len(cfg.Pages.CustomPages) != 1 || cfg.Pages.CustomPages[0].Platforms[0] != host.Browser {
		t.Errorf("CustomPages = %+v", cfg.Pages.CustomPages)
	}
	if cfg.Browser.Store != "/tmp/store.db" || cfg.Browser.Namespace != "team" {
		t.Errorf("Browser = %+v", cfg.Browser)
	}
}

func TestLoad_SearchPathAndEnv(t *testing.T) {
	dir := chdir(t)
	writeConfig(t, dir, "host: extension\n")
	t.Setenv("DEVDECK_BROWSER_NAMESPACE", "fromenv")

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HostValue() != host.Extension {
		t.Errorf("HostValue() = %v, want extension", cfg.HostValue())
	}
	if cfg.Browser.Namespace != "fromenv" {
		t.Errorf("Browser.Namespace = %q, want fromenv", cfg.Browser.Namespace)
	}
}

func TestLoad_PagesFile(t *testing.T) {
	dir := chdir(t)
	if err := os.WriteFile(filepath.Join(dir, "pages.toml"), []byte("disabled_pages = [\"node_status\"]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p := writeConfig(t, dir, "pages:\n  disabled_pages: [about]\n  file: pages.toml\n")

	Init()
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []string{"about", "node_status"}
	if len(cfg.Pages.DisabledPages) != 2 || cfg.Pages.DisabledPages[0] != want[0] || cfg.Pages.DisabledPages[1] != want[1] {
		t.Errorf("DisabledPages = %v, want %v", cfg.Pages.DisabledPages, want)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	chdir(t)
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		field   string
	}{
		{"version too low", "version: 0\n", ErrVersionTooLow, "version"},
		{"version too new", "version: 9\n", ErrUnsupportedVersion, "version"},
		{"unknown host", "host: toaster\n", ErrInvalidHost, "host"},
		{"zero timeout", "command_timeout: 0s\n", ErrInvalidTimeout, "command_timeout"},
		{"bad namespace", "browser:\n  namespace: a:b\n", ErrInvalidNamespace, "browser.namespace"},
		{
			"custom page without platforms",
			"pages:\n  custom_pages:\n    - id: x\n      name: X\n      type: page\n",
			ErrInvalidPages, "pages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			p := writeConfig(t, dir, tt.content)

			Init()
			_, err := Load(p)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, should match ErrInvalidConfig", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Load() error type = %T, want *ValidationError", err)
			}
			var ferr *FieldError
			if !errors.As(verr.Errs[0], &ferr) || ferr.Field != tt.field {
				t.Errorf("first field error = %v, want field %q", verr.Errs[0], tt.field)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	dir := chdir(t)
	fileA := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(fileA, []byte("host: browser\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cfg.HostValue() != host.Desktop {
		t.Errorf("Init() kept state from %s: host = %v", fileA, cfg.Host)
	}
}

func TestSave(t *testing.T) {
	dir := chdir(t)
	p := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Pages.DisabledPages = []string{"about"}
	if err := Save(p, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	Init()
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.CommandTimeout != cfg.CommandTimeout {
		t.Errorf("CommandTimeout = %v, want %v", got.CommandTimeout, cfg.CommandTimeout)
	}
	if len(got.Pages.DisabledPages) != 1 {
		t.Errorf("DisabledPages = %v, want [about]", got.Pages.DisabledPages)
	}

	bad := Default()
	bad.Host = "toaster"
	if err := Save(filepath.Join(dir, "bad.yaml"), bad); !errors.Is(err, ErrInvalidHost) {
		t.Errorf("Save() error = %v, want ErrInvalidHost", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}
	if errs := Validate(Default()); errs != nil {
		t.Errorf("Validate(Default()) = %v, want nil", errs)
	}
}
