package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fendlabs/fend-sentry/pkg/config"
	"github.com/fendlabs/fend-sentry/pkg/history"
)

// HistoryOptions holds command-line options for the history command.
type HistoryOptions struct {
	ConfigPath string
	Output     string
	Limit      int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past check runs",
		Long: `List previously recorded check runs, newest first.

Requires monitoring.history_path to be set in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.fend-sentry/config.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath(opts.ConfigPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Monitoring.HistoryPath == "" {
		return fmt.Errorf("history is not enabled: set monitoring.history_path in the config")
	}

	store, err := history.Open(cfg.Monitoring.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(ctx, opts.Limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if opts.Output == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded checks")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(w, "%s  %-8s %s (%s)  entries=%d errors=%d warnings=%d groups=%d",
			run.CheckedAt.Format("2006-01-02 15:04:05"), run.Status,
			run.App, run.Environment,
			run.TotalEntries, run.ErrorCount, run.WarningCount, run.GroupCount)
		if run.TopSignature != "" {
			fmt.Fprintf(w, " top=%s", run.TopSignature)
		}
		fmt.Fprintln(w)
	}

	return nil
}
