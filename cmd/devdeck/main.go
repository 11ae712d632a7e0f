// Package main is the entry point for the devdeck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/devdeck/cmd/devdeck/commands"
	"github.com/thoreinstein/devdeck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
