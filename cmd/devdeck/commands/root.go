// Package commands implements the CLI commands for devdeck.
package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	buildinfo "github.com/thoreinstein/devdeck/cmd"
	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/config"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// hostFlag holds the value of the --host flag.
var hostFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFlag holds the value of the --config flag.
var configFlag string

// cfg is the configuration loaded before every command.
var cfg *config.Config

// newApp builds the application for a command. Tests replace it.
var newApp = app.New

func init() {
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "",
		"host to run as: "+strings.Join(host.Names(), ", ")+" (default from config)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"config file (default: ./config.yaml or ~/.config/devdeck/config.yaml)")

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("devdeck version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "devdeck",
	Short: "Developer control panel for runtimes, assistant settings and services",
	Long: `devdeck is a developer control panel. It manages Node.js versions through
fnm, the AI coding assistant's provider settings and a registry of service
endpoints.

The same pages run on three hosts with different capabilities:

  desktop    full process and filesystem access
  extension  an editor extension; commands go to an integrated terminal
  browser    a sandbox with no process access; storage is emulated

Pages that need a capability the selected host lacks are hidden, and their
commands refuse to run.`,
	Example: `  # List the pages available on this host
  devdeck pages list

  # Show installed Node.js versions
  devdeck node list

  # Point the assistant at another provider
  devdeck provider use deepseek --api-key sk-...

  # See what the browser host would offer
  devdeck pages list --host browser

  See Also: devdeck config init, devdeck version`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Use either -q or -v, not both")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("DEVDECK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	primary := logging.NewFormatHandler(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		// File output uses JSON format
		handler = logging.NewMultiHandler(primary, logging.NewFormatHandler(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadConfig reads the config file and applies the --host override.
func loadConfig(cmd *cobra.Command) error {
	config.Init()
	if err := viper.BindPFlag("host", cmd.Root().PersistentFlags().Lookup("host")); err != nil {
		return errors.Wrap(err, "binding --host")
	}
	if hostFlag != "" {
		if _, err := host.Parse(hostFlag); err != nil {
			return errors.NewUserError(err, "Valid hosts: "+strings.Join(host.Names(), ", "))
		}
	}

	loaded, err := config.Load(configFlag)
	if err != nil {
		// config, version and help must work even when the file is broken
		if tolerantCommand(cmd) {
			logging.FromContext(cmd.Context()).Warn("config invalid, using defaults", "error", err)
			cfg = config.Default()
			return nil
		}
		return errors.NewConfigError(err)
	}
	cfg = loaded
	logging.FromContext(cmd.Context()).Debug("config loaded",
		"file", config.ConfigFileUsed(), "host", cfg.Host)
	return nil
}

func tolerantCommand(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd || c == versionCmd {
			return true
		}
	}
	return false
}

// withApp builds the application for cmd, runs fn and releases it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	a, err := newApp(ctx, cfg, app.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: logging.FromContext(ctx),
	})
	if err != nil {
		return errors.NewSystemError(err, "Check the browser.store and extension.workspace settings")
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logging.FromContext(ctx).Warn("closing app", "error", cerr)
		}
	}()

	return userFacing(fn(ctx, a))
}

// requirePage refuses to run a command whose page is hidden on a's host.
func requirePage(a *app.App, id string) error {
	if err := a.RequirePage(id); err != nil {
		return errors.NewUserError(err,
			"Run 'devdeck pages list' to see what this host offers, or choose another with --host")
	}
	return nil
}

// userFacing turns well-known service errors into exit errors with hints.
func userFacing(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	switch {
	case errors.Is(err, adapter.ErrNotSupported):
		return errors.NewUserError(err, "This host cannot run commands; try --host desktop")
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "")
	case errors.Is(err, adapter.ErrCommandFailed):
		return errors.NewSystemError(err, "Run with -v to see the command output")
	}
	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
