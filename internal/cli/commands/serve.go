package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fendlabs/fend-sentry/pkg/config"
	"github.com/fendlabs/fend-sentry/pkg/server"
)

// ServeOptions holds command-line options for the serve command.
type ServeOptions struct {
	ConfigPath string
	Addr       string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve health reports over HTTP",
		Long: `Run an HTTP server exposing the current health report.

Endpoints:
  GET /healthz      - liveness probe
  GET /api/summary  - full health report
  GET /api/trends   - hourly trend counts (?hours=N)

Logs are re-read on every request, so responses are always current.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.fend-sentry/config.yaml)")
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8090", "Listen address")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath(opts.ConfigPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loadLines := func(ctx context.Context) ([]string, error) {
		reader, err := newReader(cfg)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.ReadLines(ctx, cfg.Monitoring.MaxLogLines)
	}

	srv := server.New(cfg.App.Name, cfg.App.Environment, loadLines)

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s health reports on %s\n", cfg.App.Name, opts.Addr)
	return srv.ListenAndServe(ctx, opts.Addr)
}
