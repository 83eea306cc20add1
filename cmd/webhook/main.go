// Alert webhook receiver — accepts webhook POSTs (typically from
// Alertmanager) and prints the alerts they carry to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oracle/wls-alert-webhook/pkg/alert"
	"github.com/oracle/wls-alert-webhook/pkg/api"
	"github.com/oracle/wls-alert-webhook/pkg/config"
	"github.com/oracle/wls-alert-webhook/pkg/logging"
	"github.com/oracle/wls-alert-webhook/pkg/metrics"
	"github.com/oracle/wls-alert-webhook/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		slog.Error("Webhook receiver failed", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the server fails. Alerts go to
// stdout; diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet(version.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configDir := flags.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logging.Init(stderr, getEnv("LOG_FORMAT", config.LogFormatText), logging.ParseLevel(os.Getenv("LOG_LEVEL")))

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		return fmt.Errorf("initialize configuration: %w", err)
	}

	// Re-initialize now that the file and .env may have changed level or format.
	logging.Init(stderr, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))

	gin.SetMode(gin.ReleaseMode)

	printer := alert.NewPrinter(stdout)
	registry := metrics.NewRegistry(cfg.Metrics.Labels)
	server := api.NewServer(cfg, printer, registry)

	errCh := make(chan error, 1)
	go func() {
		addr := cfg.HTTP.Addr()
		slog.Info("HTTP server listening", "addr", addr, "version", version.Full())
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if err := printer.PrintServing(cfg.HTTP.Port); err != nil {
		slog.Warn("Could not write startup banner", "error", err)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown requested", "reason", context.Cause(ctx))
	case serveErr = <-errCh:
		serveErr = fmt.Errorf("http server: %w", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
	return serveErr
}
