package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fendlabs/fend-sentry/pkg/config"
	"github.com/fendlabs/fend-sentry/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a Fend Sentry configuration file without running a check.

Checks:
  - YAML syntax
  - Required fields per log source
  - Webhook URL validity
  - Local log file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  App:         %s (%s)\n", cfg.App.Name, cfg.App.Environment)
	fmt.Fprintf(w, "  Source:      %s\n", cfg.App.Source)
	switch cfg.App.Source {
	case config.SourceDocker:
		fmt.Fprintf(w, "  Container:   %s\n", cfg.App.Container)
	case config.SourceSSH:
		fmt.Fprintf(w, "  Host:        %s@%s:%d\n", cfg.Server.Username, cfg.Server.Host, cfg.Server.Port)
		fmt.Fprintf(w, "  Log path:    %s\n", cfg.App.LogPath)
	default:
		fmt.Fprintf(w, "  Log path:    %s\n", cfg.App.LogPath)
	}
	fmt.Fprintf(w, "  Max lines:   %d\n", cfg.Monitoring.MaxLogLines)
	if cfg.Alerts.Enabled {
		fmt.Fprintf(w, "  Alerts:      webhook %s\n", cfg.Alerts.WebhookURL)
	}

	// Check local files exist (warnings only)
	if cfg.App.Source == config.SourceLocal {
		files, err := source.ExpandGlobs([]string{cfg.App.LogPath})
		if err != nil {
			fmt.Fprintf(w, "\nWarning: error expanding log path: %v\n", err)
		} else {
			fmt.Fprintf(w, "\nLog files matched: %d\n", len(files))
			for _, f := range files {
				fmt.Fprintf(w, "  - %s\n", f)
			}
		}
	}

	return nil
}
