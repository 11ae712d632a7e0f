package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/mcp"
	"github.com/thoreinstein/devdeck/internal/mcp/registry"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/internal/redact"
)

var (
	servicesJSON        bool
	servicesShowSecrets bool
	servicesEnv         []string
	servicesForce       bool
	servicesReplace     bool
)

func init() {
	servicesListCmd.Flags().BoolVar(&servicesJSON, "json", false, "Output in JSON format")
	servicesListCmd.Flags().BoolVar(&servicesShowSecrets, "show-secrets", false, "Reveal masked secrets in env values")
	servicesShowCmd.Flags().BoolVar(&servicesJSON, "json", false, "Output in JSON format")
	servicesShowCmd.Flags().BoolVar(&servicesShowSecrets, "show-secrets", false, "Reveal masked secrets in env values")
	servicesAddCmd.Flags().StringArrayVarP(&servicesEnv, "env", "e", nil, "environment variable KEY=VALUE (repeatable)")
	servicesAddCmd.Flags().BoolVarP(&servicesForce, "force", "f", false, "replace an existing service")
	servicesImportCmd.Flags().BoolVar(&servicesReplace, "replace", false, "overwrite services that already exist")

	servicesCmd.AddCommand(servicesListCmd, servicesShowCmd, servicesAddCmd, servicesRemoveCmd, servicesImportCmd)
	rootCmd.AddCommand(servicesCmd)
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage the service registry",
	Long: `Manage the registry of named service endpoints and the commands that
start them. The registry is stored as JSON in the host's application data
directory (<appData>/devdeck/services.json).`,
	Example: `  devdeck services add github npx -y @modelcontextprotocol/server-github -e GITHUB_TOKEN=...
  devdeck services list
  devdeck services import ~/.claude.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDServices, func(ctx context.Context, a *app.App) error {
			list, err := a.Services.List(ctx)
			if err != nil {
				return err
			}
			return outputServices(cmd.OutOrStdout(), list, servicesJSON, servicesShowSecrets)
		})
	},
}

var servicesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDServices, func(ctx context.Context, a *app.App) error {
			s, err := a.Services.Get(ctx, args[0])
			if err != nil {
				return errors.NewUserError(err, "Run 'devdeck services list' to see registered services")
			}
			return outputService(cmd.OutOrStdout(), s, servicesJSON, servicesShowSecrets)
		})
	},
}

var servicesAddCmd = &cobra.Command{
	Use:   "add <name> <command> [args...]",
	Short: "Register a service",
	Long: `Register a service. Everything after the command is passed to it as
arguments; put "--" before arguments that start with a dash.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDServices, func(ctx context.Context, a *app.App) error {
			env, err := parseEnvFlags(servicesEnv)
			if err != nil {
				return errors.NewUserError(err, "Use -e KEY=VALUE")
			}
			s := &mcp.Service{Name: args[0], Command: args[1], Args: args[2:], Env: env}
			if len(s.Args) == 0 {
				s.Args = nil
			}
			if err := a.Services.Add(ctx, s, servicesForce); err != nil {
				return servicesError(err)
			}
			success(cmd.OutOrStdout(), "Added service %s", s.Name)
			return nil
		})
	},
}

var servicesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDServices, func(ctx context.Context, a *app.App) error {
			removed, err := a.Services.Remove(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", dimColor.Sprintf("service %s was not registered", args[0]))
				return nil
			}
			success(cmd.OutOrStdout(), "Removed service %s", args[0])
			return nil
		})
	},
}

var servicesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge services from another registry or an mcpServers document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDServicesImport, func(ctx context.Context, a *app.App) error {
			res, err := a.Services.Import(ctx, args[0], servicesReplace)
			if err != nil {
				return errors.NewUserError(err, "The file must be JSON with a \"services\" or \"mcpServers\" object")
			}
			outputImport(cmd.OutOrStdout(), res)
			return nil
		})
	},
}

func parseEnvFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, errors.Newf("invalid env %q: expected KEY=VALUE", p)
		}
		env[k] = v
	}
	return env, nil
}

func servicesError(err error) error {
	switch {
	case errors.Is(err, registry.ErrServiceExists):
		return errors.NewUserError(err, "Use --force to replace it")
	case errors.Is(err, registry.ErrInvalidService):
		return errors.NewUserError(err, "")
	}
	return err
}

type serviceJSON struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

func toServiceJSON(s *mcp.Service, showSecrets bool) serviceJSON {
	env := s.Env
	if !showSecrets {
		env = redact.Env(env)
	}
	return serviceJSON{Name: s.Name, Command: s.Command, Args: s.Args, Env: env}
}

func outputServices(w io.Writer, list []*mcp.Service, asJSON, showSecrets bool) error {
	if asJSON {
		out := make([]serviceJSON, len(list))
		for i, s := range list {
			out[i] = toServiceJSON(s, showSecrets)
		}
		return writeJSON(w, out)
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No services registered")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", boldColor.Sprint("NAME"), boldColor.Sprint("COMMAND"), boldColor.Sprint("ENV"))
	for _, s := range list {
		line := strings.Join(append([]string{s.Command}, s.Args...), " ")
		fmt.Fprintf(tw, "%s\t%s\t%d\n", nameColor.Sprint(s.Name), truncate(line, 60), len(s.Env))
	}
	return tw.Flush()
}

func outputService(w io.Writer, s *mcp.Service, asJSON, showSecrets bool) error {
	out := toServiceJSON(s, showSecrets)
	if asJSON {
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "%s\n", headerColor.Sprint(out.Name))
	fmt.Fprintf(w, "  Command: %s\n", out.Command)
	if len(out.Args) > 0 {
		fmt.Fprintf(w, "  Args:    %s\n", strings.Join(out.Args, " "))
	}
	if len(out.Env) > 0 {
		fmt.Fprintln(w, "  Env:")
		tw := newTable(w)
		for _, k := range sortedKeys(out.Env) {
			fmt.Fprintf(tw, "    %s\t%s\n", k, out.Env[k])
		}
		return tw.Flush()
	}
	return nil
}

func outputImport(w io.Writer, res *registry.ImportResult) {
	for _, n := range res.Added {
		success(w, "added %s", n)
	}
	for _, n := range res.Replaced {
		success(w, "replaced %s", n)
	}
	for _, n := range res.Skipped {
		fmt.Fprintf(w, "%s skipped %s (exists; use --replace)\n", dimColor.Sprint("-"), n)
	}
	for _, n := range res.Invalid {
		fmt.Fprintf(w, "%s invalid %s\n", warningColor.Sprint("!"), n)
	}
	if len(res.Added)+len(res.Replaced)+len(res.Skipped)+len(res.Invalid) == 0 {
		fmt.Fprintln(w, "No services found")
	}
}
