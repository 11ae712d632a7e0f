package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/internal/runtime"
	"github.com/thoreinstein/devdeck/internal/versions"
)

var (
	nodeJSON    bool
	nodeLTSOnly bool
	nodeLimit   int
)

func init() {
	nodeListCmd.Flags().BoolVar(&nodeJSON, "json", false, "Output in JSON format")
	nodeRemoteCmd.Flags().BoolVar(&nodeJSON, "json", false, "Output in JSON format")
	nodeRemoteCmd.Flags().BoolVar(&nodeLTSOnly, "lts", false, "only long-term-support releases")
	nodeRemoteCmd.Flags().IntVar(&nodeLimit, "limit", 20, "show at most this many versions (0 for all)")
	nodeStatusCmd.Flags().BoolVar(&nodeJSON, "json", false, "Output in JSON format")

	nodeCmd.AddCommand(nodeListCmd, nodeRemoteCmd, nodeCurrentCmd, nodeInstallCmd,
		nodeUninstallCmd, nodeUseCmd, nodeDefaultCmd, nodeStatusCmd)
	rootCmd.AddCommand(nodeCmd)
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Manage Node.js versions through fnm",
	Long: `Manage Node.js versions through the fnm version manager.

These commands run fnm on the host. The browser host cannot run commands,
so they are unavailable there. On the extension host commands are sent to
an integrated terminal and their output is not captured, so only actions
(install, uninstall, use, default) work.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var nodeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed Node.js versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDFnmManager, func(ctx context.Context, a *app.App) error {
			records, err := a.Runtime.ListInstalled(ctx)
			if err != nil {
				return err
			}
			return outputVersions(cmd.OutOrStdout(), records, nodeJSON, "(no versions installed)")
		})
	},
}

var nodeRemoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "List Node.js versions available to install",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDFnmManager, func(ctx context.Context, a *app.App) error {
			records, err := a.Runtime.ListRemote(ctx, nodeLTSOnly)
			if err != nil {
				return err
			}
			if nodeLimit > 0 && len(records) > nodeLimit {
				records = records[:nodeLimit]
			}
			return outputVersions(cmd.OutOrStdout(), records, nodeJSON, "(no versions available)")
		})
	},
}

var nodeCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active Node.js version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDNodeStatus, func(ctx context.Context, a *app.App) error {
			v, err := a.Runtime.Current(ctx)
			if err != nil {
				return err
			}
			if v == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "v"+v)
			return nil
		})
	},
}

var nodeInstallCmd = &cobra.Command{
	Use:     "install <version>",
	Short:   "Install a Node.js version",
	Example: "  devdeck node install 20\n  devdeck node install lts/iron",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return nodeAction(cmd, args[0], "installed", (*runtime.Manager).Install)
	},
}

var nodeUninstallCmd = &cobra.Command{
	Use:   "uninstall <version>",
	Short: "Remove an installed Node.js version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return nodeAction(cmd, args[0], "uninstalled", (*runtime.Manager).Uninstall)
	},
}

var nodeUseCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Switch the shell's Node.js version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return nodeAction(cmd, args[0], "now using", (*runtime.Manager).Use)
	},
}

var nodeDefaultCmd = &cobra.Command{
	Use:   "default <version>",
	Short: "Set the Node.js version new shells start with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return nodeAction(cmd, args[0], "default set to", (*runtime.Manager).SetDefault)
	},
}

var nodeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether fnm, node and npm are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDNodeStatus, func(ctx context.Context, a *app.App) error {
			statuses, err := a.Runtime.Status(ctx)
			if err != nil {
				return err
			}
			return outputToolStatus(cmd.OutOrStdout(), statuses, nodeJSON)
		})
	},
}

// withPage runs fn only when page id is visible on the selected host.
func withPage(cmd *cobra.Command, id string, fn func(ctx context.Context, a *app.App) error) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := requirePage(a, id); err != nil {
			return err
		}
		return fn(ctx, a)
	})
}

func nodeAction(cmd *cobra.Command, version, verb string, fn func(*runtime.Manager, context.Context, string) error) error {
	return withPage(cmd, pages.IDFnmManager, func(ctx context.Context, a *app.App) error {
		if err := fn(a.Runtime, ctx, version); err != nil {
			if errors.Is(err, runtime.ErrInvalidVersion) {
				return errors.NewUserError(err, "Use a version like 20, 20.11.0, lts/iron or latest")
			}
			return err
		}
		success(cmd.OutOrStdout(), "Node.js %s %s", verb, version)
		return nil
	})
}

func outputVersions(w io.Writer, records []versions.Record, asJSON bool, empty string) error {
	if asJSON {
		if records == nil {
			records = []versions.Record{}
		}
		return writeJSON(w, records)
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "%s\n", dimColor.Sprint(empty))
		return nil
	}

	tw := newTable(w)
	for _, r := range records {
		marker := " "
		if r.IsActive {
			marker = nameColor.Sprint("*")
		}
		note := ""
		if r.IsDefault {
			note = dimColor.Sprint("default")
		}
		fmt.Fprintf(tw, "%s v%s\t%s\n", marker, r.Version, note)
	}
	return tw.Flush()
}

func outputToolStatus(w io.Writer, statuses []runtime.ToolStatus, asJSON bool) error {
	if asJSON {
		return writeJSON(w, statuses)
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", boldColor.Sprint("TOOL"), boldColor.Sprint("INSTALLED"), boldColor.Sprint("VERSION"))
	for _, s := range statuses {
		installed := nameColor.Sprint("yes")
		if !s.Installed {
			installed = warningColor.Sprint("no")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, installed, s.Version)
	}
	return tw.Flush()
}
