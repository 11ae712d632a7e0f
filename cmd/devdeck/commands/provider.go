package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/internal/redact"
	"github.com/thoreinstein/devdeck/internal/settings"
)

var (
	providerJSON        bool
	providerShowSecrets bool

	providerAPIKey  string
	providerBaseURL string
	providerModel   string

	apiTimeout       int
	apiRetryAttempts int
	apiRetryDelay    int
)

func init() {
	providerShowCmd.Flags().BoolVar(&providerJSON, "json", false, "Output in JSON format")
	providerShowCmd.Flags().BoolVar(&providerShowSecrets, "show-secrets", false, "Reveal masked secrets in env values")
	providerPresetsCmd.Flags().BoolVar(&providerJSON, "json", false, "Output in JSON format")

	providerUseCmd.Flags().StringVar(&providerAPIKey, "api-key", "", "API key (default: keep the stored key)")
	providerUseCmd.Flags().StringVar(&providerBaseURL, "base-url", "", "endpoint for the custom provider")
	providerUseCmd.Flags().StringVar(&providerModel, "model", "", "model override")

	providerAPICmd.Flags().IntVar(&apiTimeout, "timeout", 0, "request timeout in milliseconds")
	providerAPICmd.Flags().IntVar(&apiRetryAttempts, "retry-attempts", 0, "retries after a failed request")
	providerAPICmd.Flags().IntVar(&apiRetryDelay, "retry-delay", 0, "delay between retries in milliseconds")

	providerEnvCmd.AddCommand(providerEnvSetCmd, providerEnvUnsetCmd)
	providerCmd.AddCommand(providerShowCmd, providerPresetsCmd, providerUseCmd, providerEnvCmd, providerAPICmd)
	rootCmd.AddCommand(providerCmd)
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage the AI coding assistant's provider settings",
	Long: `Manage the assistant's settings file (~/.claude/settings.json).

The file holds environment variables the assistant exports and API client
tuning. Fields devdeck does not know are preserved when it writes the file.
Secret values (keys, tokens) are masked in output unless --show-secrets is
given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var providerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current provider, environment and API settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDClaudeModel, func(ctx context.Context, a *app.App) error {
			st, err := a.Settings.Load(ctx)
			if err != nil {
				return err
			}
			path, _ := a.Settings.Path()
			return outputProvider(cmd.OutOrStdout(), path, st, providerJSON, providerShowSecrets)
		})
	},
}

var providerPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in provider presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return outputPresets(cmd.OutOrStdout(), providerJSON)
	},
}

var providerUseCmd = &cobra.Command{
	Use:   "use <provider>",
	Short: "Switch to a provider preset or a custom endpoint",
	Example: `  devdeck provider use anthropic --api-key sk-ant-...
  devdeck provider use deepseek --api-key sk-...
  devdeck provider use custom --base-url https://llm.internal/anthropic --model my-model`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDClaudeModel, func(ctx context.Context, a *app.App) error {
			st, err := a.Settings.ApplyProvider(ctx, args[0], settings.ProviderOptions{
				APIKey:  providerAPIKey,
				BaseURL: providerBaseURL,
				Model:   providerModel,
			})
			if err != nil {
				return providerError(err)
			}
			p := st.CurrentProvider()
			success(cmd.OutOrStdout(), "Provider set to %s", p.DisplayName)
			if p.Model != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  Model: %s\n", p.Model)
			}
			return nil
		})
	},
}

var providerEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Set or unset assistant environment variables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var providerEnvSetCmd = &cobra.Command{
	Use:   "set <KEY> <VALUE>",
	Short: "Set an environment variable",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDClaudeEnv, func(ctx context.Context, a *app.App) error {
			if err := a.Settings.SetEnv(ctx, args[0], args[1]); err != nil {
				return providerError(err)
			}
			success(cmd.OutOrStdout(), "%s=%s", args[0], redact.Pair(args[0], args[1]))
			return nil
		})
	},
}

var providerEnvUnsetCmd = &cobra.Command{
	Use:   "unset <KEY>...",
	Short: "Remove environment variables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPage(cmd, pages.IDClaudeEnv, func(ctx context.Context, a *app.App) error {
			if err := a.Settings.UnsetEnv(ctx, args...); err != nil {
				return err
			}
			for _, k := range args {
				success(cmd.OutOrStdout(), "unset %s", k)
			}
			return nil
		})
	},
}

var providerAPICmd = &cobra.Command{
	Use:   "api",
	Short: "Show or change API client settings",
	Long: `Show or change the API client settings. Without flags the current values
are printed; flags that are given replace the stored values.`,
	Example: "  devdeck provider api --timeout 300000 --retry-attempts 5",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPage(cmd, pages.IDClaudeModel, func(ctx context.Context, a *app.App) error {
			st, err := a.Settings.Load(ctx)
			if err != nil {
				return err
			}
			api := st.API
			flags := cmd.Flags()
			changed := false
			if flags.Changed("timeout") {
				api.Timeout, changed = apiTimeout, true
			}
			if flags.Changed("retry-attempts") {
				api.RetryAttempts, changed = apiRetryAttempts, true
			}
			if flags.Changed("retry-delay") {
				api.RetryDelay, changed = apiRetryDelay, true
			}
			if changed {
				if err := a.Settings.SetAPISettings(ctx, api); err != nil {
					return providerError(err)
				}
			}
			outputAPISettings(cmd.OutOrStdout(), api)
			return nil
		})
	},
}

func providerError(err error) error {
	switch {
	case errors.Is(err, settings.ErrUnknownProvider):
		return errors.NewUserError(err, "Run 'devdeck provider presets' to list providers, or use 'custom' with --base-url")
	case errors.Is(err, settings.ErrInvalidSettings):
		return errors.NewUserError(err, "")
	}
	return err
}

type providerOutput struct {
	Path     string               `json:"path"`
	Provider settings.Provider    `json:"provider"`
	Env      []settings.EnvEntry  `json:"env"`
	API      settings.APISettings `json:"apiSettings"`
}

func outputProvider(w io.Writer, path string, st *settings.Settings, asJSON, showSecrets bool) error {
	env := st.MaskedEnv()
	if showSecrets {
		for i := range env {
			env[i].Value = st.Env[env[i].Key]
		}
	}
	p := st.CurrentProvider()

	if asJSON {
		return writeJSON(w, providerOutput{Path: path, Provider: p, Env: env, API: st.API})
	}

	fmt.Fprintf(w, "%s\n", headerColor.Sprint("Provider"))
	fmt.Fprintf(w, "  Name:     %s\n", p.DisplayName)
	if p.BaseURL != "" {
		fmt.Fprintf(w, "  Base URL: %s\n", redact.URL(p.BaseURL))
	}
	if p.Model != "" {
		fmt.Fprintf(w, "  Model:    %s\n", p.Model)
	}
	if path != "" {
		fmt.Fprintf(w, "  File:     %s\n", dimColor.Sprint(path))
	}

	fmt.Fprintf(w, "\n%s\n", headerColor.Sprint("Environment"))
	if len(env) == 0 {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(none)"))
	} else {
		tw := newTable(w)
		for _, e := range env {
			fmt.Fprintf(tw, "  %s\t%s\n", nameColor.Sprint(e.Key), e.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	outputAPISettings(w, st.API)
	return nil
}

func outputAPISettings(w io.Writer, api settings.APISettings) {
	fmt.Fprintf(w, "%s\n", headerColor.Sprint("API settings"))
	fmt.Fprintf(w, "  Timeout:        %d ms\n", api.Timeout)
	fmt.Fprintf(w, "  Retry attempts: %d\n", api.RetryAttempts)
	fmt.Fprintf(w, "  Retry delay:    %d ms\n", api.RetryDelay)
}

func outputPresets(w io.Writer, asJSON bool) error {
	presets := settings.Presets()
	if asJSON {
		return writeJSON(w, presets)
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		boldColor.Sprint("NAME"), boldColor.Sprint("PROVIDER"), boldColor.Sprint("MODEL"), boldColor.Sprint("BASE URL"))
	for _, p := range presets {
		base := p.BaseURL
		if base == "" {
			base = dimColor.Sprint("(default)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", nameColor.Sprint(p.Name), p.DisplayName, p.Model, base)
	}
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", nameColor.Sprint(settings.ProviderCustom), "Custom", "", dimColor.Sprint("--base-url"))
	return tw.Flush()
}
