package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/devdeck/cmd"
)

var versionJSON bool

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runVersion(cmd.OutOrStdout(), versionJSON)
	},
}

type versionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

func runVersion(w io.Writer, asJSON bool) error {
	v := versionOutput{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Date:    buildinfo.Date,
		Go:      runtime.Version(),
	}
	if asJSON {
		return writeJSON(w, v)
	}
	fmt.Fprintf(w, "devdeck %s (commit %s, built %s, %s)\n", v.Version, v.Commit, v.Date, v.Go)
	return nil
}
