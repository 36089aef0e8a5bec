package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/storefront-search/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listing service location, credentials and payload selectors come from
	// the environment (STOREFRONT_BASE_URL defaults to
	// http://localhost:8080/api) or the file named by STOREFRONT_CONFIG_FILE.
	c, err := mcpsrv.NewClientFromEnv()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The catalog snapshot loads lazily on the first tool call. Logging:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(c)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting storefront MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
