package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/versus/internal/jsonrpc"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var flags evalFlags
	var tcpAddr string
	var tcpAllowRemote bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a JSON-RPC 2.0 server for editor and notebook integration",
		Long: `Start a JSON-RPC 2.0 server.

By default, the server communicates over stdin/stdout using newline-delimited JSON.
Use --tcp to start a TCP server instead (useful for debugging).
TCP defaults to loopback (127.0.0.1). Use --tcp-allow-remote to bind
to all interfaces.

Every method takes {"csv": "<text>"} or {"path": "<file>"} plus optional
"options"; the evaluation flags below set the defaults for omitted options.

Supported methods:
  csv.parse               Parse a table into records
  csv.headers             Column headers
  classification.matrix   Exact confusion matrices
  classification.roc      ROC curves over 100 thresholds
  classification.auc      Area under each ROC curve
  classification.report   Full classification report
  regression.mae          Mean absolute error
  regression.mape         Mean absolute percentage error
  regression.mse          Mean squared error
  regression.report       Full regression report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, opts, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			registry := jsonrpc.NewMethodRegistry()
			jsonrpc.RegisterHandlers(registry, jsonrpc.NewHandlerContext(svc, opts))

			logger := slog.Default()
			server := jsonrpc.NewServer(registry, logger)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if tcpAddr != "" {
				addr := resolveTCPAddr(tcpAddr, tcpAllowRemote, logger)

				listener, err := jsonrpc.NewTCPListener(addr, server)
				if err != nil {
					return fmt.Errorf("failed to start TCP server: %w", err)
				}
				defer listener.Close() //nolint:errcheck
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "JSON-RPC server listening on %s\n", listener.Addr())
				return listener.Serve(ctx)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "JSON-RPC server running on stdio") //nolint:errcheck
			server.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "TCP address to listen on (e.g., :9000)")
	cmd.Flags().BoolVar(&tcpAllowRemote, "tcp-allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the server to the network with no authentication)")

	return cmd
}

// resolveTCPAddr ensures TCP addresses default to loopback unless --tcp-allow-remote is set.
func resolveTCPAddr(addr string, allowRemote bool, logger *slog.Logger) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// Likely just a port like "9000"; treat as ":9000".
		host = ""
		port = addr
	}

	if allowRemote {
		logger.Warn("TCP server binding to all interfaces; no authentication is provided",
			"address", addr)
		return addr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		logger.Info("JSON-RPC server listening on TCP (local only)")
		return net.JoinHostPort("127.0.0.1", port)
	}

	return addr
}
