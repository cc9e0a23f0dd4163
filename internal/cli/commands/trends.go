package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fendlabs/fend-sentry/pkg/config"
	"github.com/fendlabs/fend-sentry/pkg/parser"
)

// TrendsOptions holds command-line options for the trends command.
type TrendsOptions struct {
	ConfigPath string
	Output     string
	Hours      int
}

// NewTrendsCommand creates the trends command.
func NewTrendsCommand() *cobra.Command {
	opts := &TrendsOptions{}

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show hourly error and warning counts",
		Long: `Parse the configured logs and print per-hour error and warning counts
for the requested window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrends(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.fend-sentry/config.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVar(&opts.Hours, "hours", 24, "Trend window in hours")

	return cmd
}

func runTrends(cmd *cobra.Command, opts *TrendsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath(opts.ConfigPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reader, err := newReader(cfg)
	if err != nil {
		return err
	}
	defer reader.Close()

	lines, err := reader.ReadLines(ctx, cfg.Monitoring.MaxLogLines)
	if err != nil {
		return fmt.Errorf("reading logs: %w", err)
	}

	summary := parser.New().Parse(lines)
	trends, err := summary.ErrorTrends(opts.Hours)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if opts.Output == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(trends)
	}

	fmt.Fprintf(w, "Trends for %s (last %dh): %d errors, %d warnings\n",
		cfg.App.Name, opts.Hours, trends.TotalErrors, trends.TotalWarnings)

	hours := make(map[string]bool)
	for h := range trends.HourlyErrors {
		hours[h] = true
	}
	for h := range trends.HourlyWarnings {
		hours[h] = true
	}
	if len(hours) == 0 {
		fmt.Fprintln(w, "No errors or warnings in window")
		return nil
	}

	keys := make([]string, 0, len(hours))
	for h := range hours {
		keys = append(keys, h)
	}
	sort.Strings(keys)

	for _, h := range keys {
		fmt.Fprintf(w, "  %s  errors=%-4d warnings=%d\n",
			h, trends.HourlyErrors[h], trends.HourlyWarnings[h])
	}

	return nil
}
