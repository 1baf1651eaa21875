package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brojonat/poolwatch/service/config"
	"github.com/brojonat/poolwatch/service/metrics"
	"github.com/brojonat/poolwatch/service/scanner"
	"github.com/brojonat/poolwatch/service/solana"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

// flagEnv maps the environment keys read by config to the flags bound to them.
var flagEnv = map[string]string{
	"RPC_URL":            "rpc-url",
	"RAYDIUM_LP_PROGRAM": "program",
	"COMMITMENT":         "commitment",
	"LOG_LEVEL":          "log-level",
	"METRICS_ADDR":       "metrics-addr",
}

func runScanner(c *cli.Context, stdout, stderr io.Writer, dial dialFunc) error {
	// Load and validate configuration before anything touches the network
	cfg, err := config.FromEnv(func(key string) string {
		if name, ok := flagEnv[key]; ok {
			return c.String(name)
		}
		return os.Getenv(key)
	})
	if err != nil {
		return err
	}

	// Setup structured logging
	logger := setupLogger(cfg.LogLevel, stderr)
	endpoint := solana.EndpointLabel(cfg.RPCURL)
	logger.Info("starting pool watcher",
		"endpoint", endpoint,
		"program", cfg.ProgramID.String(),
		"commitment", cfg.Commitment,
		"poll_interval", cfg.PollInterval,
		"log_level", cfg.LogLevel,
	)

	// Setup context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Prometheus metrics collector on a private registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := metrics.NewMetrics(registry)

	// Start metrics HTTP server if configured
	if cfg.MetricsAddr != "" {
		metricsServer := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(metricsCollector, registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("starting metrics HTTP server", "addr", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown metrics server", "error", err)
			}
		}()
	}

	// Initialize Solana RPC client
	// Note: For premium RPC endpoints, include API key in the URL
	solanaClient := solana.NewClient(dial(cfg.RPCURL), cfg.Commitment, endpoint, metricsCollector, logger)

	s := scanner.New(cfg, solanaClient, scanner.NewConsoleReporter(stdout), metricsCollector, logger)
	err = s.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Info("shutdown complete")
		return nil
	}
	return fmt.Errorf("pool scanner stopped: %w", err)
}

// setupLogger creates a structured logger with the given log level.
func setupLogger(levelStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}
