package main

import (
	"cmp"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spboyer/versus/internal/webserver"
	"github.com/spf13/cobra"
)

func newDashboardCommand() *cobra.Command {
	var flags evalFlags
	var (
		host           string
		port           int
		resultsDir     string
		openBrowser    bool
		allowedOrigins []string
		readOnly       bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve saved reports and on-demand evaluations over HTTP",
		Long: `Serve the results directory over a JSON HTTP API.

Endpoints:
  GET  /api/health                    Liveness and version
  GET  /api/reports                   Saved reports (?sort=timestamp|rows|model_a|model_b&order=asc|desc)
  GET  /api/reports/{id}              One report in full
  GET  /api/summary                   Aggregates across saved reports
  POST /api/evaluate/classification   Evaluate {"csv": ..., "options": ..., "save": bool}
  POST /api/evaluate/regression       Same, for regression tables
  GET  /metrics                       Prometheus metrics

Reports written by "versus report --save" appear here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, opts, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = cmp.Or(cfg.Server.Port, projectconfig.DefaultServerPort)
			}
			if !cmd.Flags().Changed("results-dir") {
				resultsDir = cmp.Or(cfg.Server.ResultsDir, cfg.Output.Dir, projectconfig.DefaultServerResultsDir)
			}

			wcfg := webserver.Config{
				Host:           host,
				Port:           port,
				ResultsDir:     resultsDir,
				Defaults:       opts,
				AllowedOrigins: allowedOrigins,
				OpenBrowser:    openBrowser,
			}
			if !readOnly {
				wcfg.Eval = svc
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return webserver.New(wcfg).ListenAndServe(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Interface to listen on")
	cmd.Flags().IntVar(&port, "port", projectconfig.DefaultServerPort, "Port to listen on")
	cmd.Flags().StringVar(&resultsDir, "results-dir", projectconfig.DefaultServerResultsDir, "Directory of saved report JSON files")
	cmd.Flags().BoolVar(&openBrowser, "open", false, "Open the report listing in a browser")
	cmd.Flags().StringSliceVar(&allowedOrigins, "allow-origin", nil, "Origin allowed to call the API cross-site (repeatable)")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Disable the evaluate endpoints")

	return cmd
}
