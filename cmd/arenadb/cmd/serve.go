package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tuannm99/arenadb/internal/metrics"
	"github.com/tuannm99/arenadb/internal/sql/executor"
	"github.com/tuannm99/arenadb/server/arenawire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one shared database over TCP",
	Long: `Serve one in-memory database over the arenawire TCP protocol.
Commands from all connections run one at a time.

Examples:
  arenadb serve
  arenadb serve --addr 0.0.0.0:8866 --metrics-addr 127.0.0.1:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg := prometheus.NewRegistry()
		ex := executor.NewExecutor(newDatabase(), executor.WithMetrics(metrics.New(reg)))

		if cfg.Server.MetricsAddr != "" {
			stop := serveMetrics(ctx, cfg.Server.MetricsAddr, reg)
			defer stop()
		}

		cmd.Printf("arenadb listening on %s\n", cfg.Server.Addr)
		return arenawire.Run(ctx, arenawire.ServerConfig{Addr: cfg.Server.Addr}, ex)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8866", "TCP listen address")
	serveCmd.Flags().String("metrics-addr", "", "HTTP address for /metrics and /healthz (empty = off)")
}

// serveMetrics starts the metrics HTTP server and returns its shutdown func.
func serveMetrics(ctx context.Context, addr string, g prometheus.Gatherer) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Router(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics: serve", "err", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
