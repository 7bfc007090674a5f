package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"forgeboard.app/linear-mcp/common/logger"
	"forgeboard.app/linear-mcp/common/otel"
	"forgeboard.app/linear-mcp/core/config"
	"forgeboard.app/linear-mcp/internal/linear"
	"forgeboard.app/linear-mcp/internal/media"
	"forgeboard.app/linear-mcp/internal/tools"
)

var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// Telemetry before the logger so the otelslog bridge finds the
	// global provider.
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)
	slog.InfoContext(ctx, "linear-mcp starting", "env", cfg.Env, "version", version)

	clientOpts := []linear.Option{
		linear.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if cfg.Linear.BaseURL != "" {
		clientOpts = append(clientOpts, linear.WithEndpoint(cfg.Linear.BaseURL))
	}
	client := linear.NewClient(cfg.Linear.APIKey, clientOpts...)

	cache := media.NewDiskCache(cfg.Media.CacheDir, client)
	resolver := media.NewResolver(cache)

	mcpServer := tools.NewServer(client, resolver, version)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(mcpServer)
	}()

	slog.InfoContext(ctx, "serving over stdio", "cache_dir", cfg.Media.CacheDir)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.InfoContext(ctx, "shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "stdio transport error", "error", err)
		}
	}

	if err := cache.Dispose(); err != nil {
		slog.WarnContext(ctx, "removing image cache failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "telemetry shutdown failed", "error", err)
	}

	slog.InfoContext(ctx, "shutdown complete")
}
