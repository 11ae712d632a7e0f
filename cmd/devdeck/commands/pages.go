package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/devdeck/internal/app"
	"github.com/thoreinstein/devdeck/internal/cli/prompt"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
	"github.com/thoreinstein/devdeck/internal/pages"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

var (
	pagesCategory string
	pagesTags     []string
	pagesSearch   string
	pagesJSON     bool
	pagesAll      bool

	pagesExportFormat string
	pagesExportOutput string
)

func init() {
	for _, c := range []*cobra.Command{pagesListCmd, pagesPickCmd, pagesExportCmd} {
		c.Flags().StringVar(&pagesCategory, "category", "", "only pages in this category")
		c.Flags().StringSliceVar(&pagesTags, "tag", nil, "only pages carrying every tag")
		c.Flags().StringVar(&pagesSearch, "search", "", "only pages whose name, description or tags contain the text")
	}
	pagesListCmd.Flags().BoolVar(&pagesJSON, "json", false, "Output in JSON format")
	pagesListCmd.Flags().BoolVar(&pagesAll, "all", false, "list every catalog page with its per-host visibility")
	pagesExportCmd.Flags().StringVar(&pagesExportFormat, "format", "", "json, yaml or toml (default: from --output extension, else json)")
	pagesExportCmd.Flags().StringVarP(&pagesExportOutput, "output", "o", "", "write to file instead of stdout")
	pagesExportCmd.Flags().BoolVar(&pagesAll, "all", false, "export the whole catalog instead of the resolved pages")

	pagesCmd.AddCommand(pagesListCmd, pagesPickCmd, pagesExportCmd)
	rootCmd.AddCommand(pagesCmd)
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Inspect the page catalog",
	Long: `Inspect the catalog of pages and which of them the selected host shows.

A page is visible when it lists the host among its platforms and the
configuration does not hide it. When pages.enabled_pages is set it is the
exact list shown; otherwise pages.disabled_pages hides entries. Custom pages
from the configuration are always appended.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages visible on the selected host",
	Example: `  devdeck pages list
  devdeck pages list --host browser --json
  devdeck pages list --category runtime
  devdeck pages list --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			if pagesAll {
				return outputPageMatrix(cmd.OutOrStdout(), a, pagesFilter())
			}
			return runPagesList(cmd.OutOrStdout(), a, pagesFilter(), pagesJSON)
		})
	},
}

var pagesPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a visible page interactively and show its details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			chooser := newChooser(cmd.InOrStdin(), cmd.OutOrStdout())
			return runPagesPick(cmd.OutOrStdout(), a, pagesFilter(), chooser)
		})
	},
}

var pagesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export pages as JSON, YAML or TOML",
	Example: `  devdeck pages export --format yaml
  devdeck pages export -o pages.toml --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			format, err := exportFormat(pagesExportFormat, pagesExportOutput)
			if err != nil {
				return errors.NewUserError(err, "Use --format json, yaml or toml")
			}
			list := a.Pages(pagesFilter())
			if pagesAll {
				list = a.Catalog.All()
			}

			if pagesExportOutput == "" {
				return pages.Export(cmd.OutOrStdout(), format, list)
			}
			var buf bytes.Buffer
			if err := pages.Export(&buf, format, list); err != nil {
				return err
			}
			if err := fileutil.AtomicWriteFile(pagesExportOutput, buf.Bytes(), 0o644); err != nil {
				return errors.Wrapf(err, "writing %s", pagesExportOutput)
			}
			logging.FromContext(ctx).Info("pages exported", "path", pagesExportOutput, "count", len(list))
			return nil
		})
	},
}

func pagesFilter() *pages.Filter {
	return &pages.Filter{Category: pagesCategory, Tags: pagesTags, Search: pagesSearch}
}

func exportFormat(flag, output string) (pages.Format, error) {
	switch {
	case flag != "":
		return pages.ParseFormat(flag)
	case output != "":
		return pages.FormatFromPath(output)
	}
	return pages.FormatJSON, nil
}

// runPagesList writes the pages resolved for a's host.
func runPagesList(w io.Writer, a *app.App, f *pages.Filter, asJSON bool) error {
	list := a.Pages(f)
	if asJSON {
		return writeJSON(w, list)
	}

	fmt.Fprintf(w, "%s\n", headerColor.Sprintf("Host: %s", a.Host().DisplayName()))
	if len(list) == 0 {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(no pages visible)"))
		return nil
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
		boldColor.Sprint("ID"), boldColor.Sprint("NAME"), boldColor.Sprint("TYPE"), boldColor.Sprint("CATEGORY"))
	for _, p := range list {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", nameColor.Sprint(p.ID), p.Name, p.Kind, p.Category)
	}
	return tw.Flush()
}

// outputPageMatrix shows every catalog page against every host.
func outputPageMatrix(w io.Writer, a *app.App, f *pages.Filter) error {
	hosts := host.All()
	visible := make(map[host.Host]map[string]bool, len(hosts))
	for _, h := range hosts {
		visible[h] = map[string]bool{}
		for _, p := range a.Catalog.Resolve(h, &a.Config.Pages.Config, nil) {
			visible[h][p.ID] = true
		}
	}

	tw := newTable(w)
	header := []string{boldColor.Sprint("ID")}
	for _, h := range hosts {
		header = append(header, boldColor.Sprint(strings.ToUpper(string(h))))
	}
	fmt.Fprintf(tw, "%s\n", strings.Join(header, "\t"))
	for _, p := range a.Catalog.All() {
		if !f.Match(p) {
			continue
		}
		row := []string{p.ID}
		for _, h := range hosts {
			row = append(row, yesNo(visible[h][p.ID]))
		}
		fmt.Fprintf(tw, "%s\n", strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// runPagesPick lets the user choose a page and prints its details.
func runPagesPick(w io.Writer, a *app.App, f *pages.Filter, chooser prompt.Chooser) error {
	list := a.Pages(f)
	labels := make([]string, len(list))
	for i, p := range list {
		labels[i] = fmt.Sprintf("%s (%s)", p.Name, p.ID)
	}
	if fz, ok := chooser.(prompt.Fuzzy); ok {
		fz.Preview = func(i int) string { return describePage(list[i]) }
		chooser = fz
	}

	idx, err := chooser.Choose("Select a page", labels)
	switch {
	case errors.Is(err, prompt.ErrNoOptions):
		return errors.NewUserError(err, "No pages are visible on this host; check pages.enabled_pages")
	case errors.Is(err, prompt.ErrSelectionCancelled):
		return nil
	case err != nil:
		return err
	}

	fmt.Fprint(w, describePage(list[idx]))
	return nil
}

func describePage(p pages.PageMeta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerColor.Sprint(p.Name))
	fmt.Fprintf(&b, "  ID:        %s\n", p.ID)
	fmt.Fprintf(&b, "  Type:      %s\n", p.Kind)
	if p.Category != "" {
		fmt.Fprintf(&b, "  Category:  %s\n", p.Category)
	}
	names := make([]string, len(p.Platforms))
	for i, h := range p.Platforms {
		names[i] = string(h)
	}
	fmt.Fprintf(&b, "  Platforms: %s\n", strings.Join(names, ", "))
	if reqs := p.Requirements(); len(reqs) > 0 {
		fmt.Fprintf(&b, "  Requires:  %v\n", reqs)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "  Tags:      %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n  %s\n", p.Description)
	}
	return b.String()
}

// newChooser returns the fuzzy finder on a terminal and a numbered prompt otherwise.
func newChooser(in io.Reader, out io.Writer) prompt.Chooser {
	if logging.IsTTY(in) && logging.IsTTY(out) {
		return prompt.Fuzzy{}
	}
	return prompt.NewSelectorWithIO(in, out)
}
