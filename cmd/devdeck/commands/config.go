package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/devdeck/internal/config"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

var (
	configInitForce bool
	configInitPath  string
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write (default: ~/.config/devdeck/config.yaml)")

	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage devdeck configuration",
	Long: `Manage devdeck configuration stored in ~/.config/devdeck/config.yaml.

Without a subcommand, prints the effective configuration.`,
	Example: `  # Write a default config file
  devdeck config init

  # Show the effective configuration
  devdeck config show

  # Read one value
  devdeck config get browser.store`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout(), cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configInitPath
		if path == "" {
			path = config.DefaultPath()
		}
		return runConfigInit(cmd.OutOrStdout(), path, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout(), cfg)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Long: `Print a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd.OutOrStdout(), args[0])
	},
}

func runConfigInit(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewUserError(errors.Newf("%s already exists", path), "Use --force to overwrite it")
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	success(w, "Wrote %s", path)
	return nil
}

func runConfigShow(w io.Writer, c *config.Config) error {
	if c == nil {
		c = config.Default()
	}
	if used := config.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	} else {
		fmt.Fprintln(w, "# defaults (no config file found)")
	}
	data, err := fileutil.EncodeYAML(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func runConfigGet(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}
