// Package main is the entry point for the filemcp CLI.
//
// The default action serves the search_in_file tool over MCP on stdin and
// stdout. The search and tools subcommands run the same code paths locally,
// which is handy when wiring the server into an assistant.
package main

import (
	"fmt"
	"io"
	"os"

	"filemcp/internal/logging"
	"filemcp/internal/ui"

	"github.com/spf13/cobra"
)

func main() {
	// The shared default, so config loading logs to the same destination
	appLogger := logging.GetDefault()

	os.Exit(execute(newRootCmd(appLogger), os.Stderr))
}

// execute runs the command tree and returns the process exit code. A failure
// is reported exactly once, on stderr; stdout belongs to the protocol.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(stderr, ui.RenderError(fmt.Errorf("error: %w", err)))
		return 1
	}
	return 0
}
