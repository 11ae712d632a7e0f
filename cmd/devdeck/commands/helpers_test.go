package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/devdeck/internal/adapter/mocks"
	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/config"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/kvstore"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/internal/runtime"
)

// isolate moves the test into an empty directory with its own XDG config
// home so no real devdeck config is loaded.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("DEVDECK_DEBUG", "")
	xdg.Reload()
	return dir
}

// resetFlags restores every flag below c to its default so package-level
// flag variables do not leak between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args. A non-nil a replaces the App the
// commands would build.
func execute(t *testing.T, a *app.App, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	prev := newApp
	t.Cleanup(func() { newApp = prev })
	if a != nil {
		newApp = func(context.Context, *config.Config, app.Options) (*app.App, error) { return a, nil }
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// browserApp builds an App on the browser host over an in-memory store.
func browserApp(t *testing.T, mutate func(*config.Config)) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Host = string(host.Browser)
	if mutate != nil {
		mutate(cfg)
	}
	a, err := app.New(context.Background(), cfg, app.Options{
		In:     strings.NewReader(""),
		Out:    io.Discard,
		Logger: logging.ForTest(t),
		Store:  kvstore.NewMemory(),
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	return a
}

// mockApp builds a desktop App whose adapter is a testify mock.
func mockApp(t *testing.T) (*app.App, *mocks.MockAdapter) {
	t.Helper()
	m := mocks.NewMockAdapter(t)
	m.EXPECT().Host().Return(host.Desktop).Maybe()
	m.EXPECT().Capabilities().Return(host.DefaultCapabilities(host.Desktop)).Maybe()

	cat := pages.NewCatalog()
	if err := cat.Register(pages.Builtin()...); err != nil {
		t.Fatal(err)
	}
	return &app.App{
		Config:  config.Default(),
		Adapter: m,
		Catalog: cat,
		Runtime: runtime.NewManager(m, runtime.WithLogger(logging.ForTest(t))),
		Logger:  logging.ForTest(t),
	}, m
}

var anyCtx = mock.Anything

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}
