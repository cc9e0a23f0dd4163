// Package cli provides the command-line interface for Fend Sentry.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fendlabs/fend-sentry/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fend-sentry",
		Short: "Health checks for your application logs",
		Long: `Fend Sentry reads your application's logs, groups recurring errors by
signature, and reports overall health.

It retrieves logs from local files, remote hosts over SSH, or docker
containers, then:
  - Recognizes common log line formats and normalizes timestamps
  - Stitches multi-line tracebacks onto their entries
  - Deduplicates errors into signed groups with first/last seen times
  - Computes hourly error and warning trends

Run 'fend-sentry check' for a one-shot health check, or 'fend-sentry serve'
to expose the same report over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewTrendsCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
