package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fendlabs/fend-sentry/pkg/config"
	"github.com/fendlabs/fend-sentry/pkg/history"
	"github.com/fendlabs/fend-sentry/pkg/parser"
	"github.com/fendlabs/fend-sentry/pkg/report"
	"github.com/fendlabs/fend-sentry/pkg/source"
	"github.com/fendlabs/fend-sentry/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// CheckOptions holds command-line options for the check command.
type CheckOptions struct {
	ConfigPath string
	Output     string
	Hours      int
	Verbose    bool
	Quiet      bool
	NoAlert    bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a one-shot health check against the configured logs",
		Long: `Retrieve the configured application's logs, parse them, and report
overall health.

Exit codes:
  0 - No significant issues detected
  1 - Errors or elevated warnings detected
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.fend-sentry/config.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVar(&opts.Hours, "hours", 24, "Trend window in hours")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show stack traces and recent warnings")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Status line only, no details")
	cmd.Flags().BoolVar(&opts.NoAlert, "no-alert", false, "Skip webhook alerts even if configured")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath(opts.ConfigPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if opts.Hours <= 0 {
		return fmt.Errorf("hours must be positive, got %d", opts.Hours)
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
		return fmt.Errorf("computing trends: %w", err)
	}

	rep := report.New(cfg.App.Name, cfg.App.Environment, summary, trends)

	formatter, err := createFormatter(opts.Output, report.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, rep, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if !opts.NoAlert {
		sendAlert(ctx, cfg, rep)
	}

	if cfg.Monitoring.HistoryPath != "" {
		if err := recordHistory(ctx, cfg.Monitoring.HistoryPath, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record history: %v\n", err)
		}
	}

	if rep.HasIssues() {
		ExitCode = 1
	}

	return nil
}

// sendAlert fires the configured webhook when the report has issues.
// Errors are logged to stderr but don't fail the check.
func sendAlert(ctx context.Context, cfg *config.Config, rep *report.Report) {
	if !cfg.Alerts.Enabled || cfg.Alerts.WebhookURL == "" {
		return
	}
	if !rep.HasIssues() {
		return
	}

	client := webhook.NewClient()
	resp := client.Send(ctx, rep, webhook.SendOptions{
		URL:   cfg.Alerts.WebhookURL,
		Token: cfg.Alerts.WebhookToken,
	})

	if resp.Success() {
		fmt.Fprintf(os.Stderr, "Alert webhook: sent (%d, %s)\n", resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(os.Stderr, "Alert webhook: failed (%v)\n", resp.Error)
	}
}

func recordHistory(ctx context.Context, path string, rep *report.Report) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordCheck(ctx, rep)
	return err
}

// newReader builds the log reader for the configured source.
func newReader(cfg *config.Config) (source.Reader, error) {
	switch cfg.App.Source {
	case config.SourceLocal:
		return source.NewFileReader(cfg.App.LogPath), nil
	case config.SourceSSH:
		return source.NewSSHReader(source.SSHConfig{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			User:           cfg.Server.Username,
			PrivateKeyPath: cfg.Server.PrivateKeyPath,
			Password:       cfg.Server.Password,
		}, cfg.App.LogPath), nil
	case config.SourceDocker:
		return source.NewDockerReader(cfg.App.Container), nil
	default:
		return nil, fmt.Errorf("unknown log source %q", cfg.App.Source)
	}
}

func createFormatter(format string, opts report.FormatOptions) (report.Formatter, error) {
	switch format {
	case "text":
		return report.NewTextFormatter(opts), nil
	case "json":
		return report.NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	return config.DefaultPath()
}
