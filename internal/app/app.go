// Package app provides application lifecycle management for the warsync server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/warfront-labs/warsync/internal/config"
	"github.com/warfront-labs/warsync/internal/sync/coordinator"
)

// WarsyncApp encapsulates all components needed to run the warsync server.
// It provides lifecycle management and graceful shutdown capabilities.
type WarsyncApp struct {
	config      *config.Config
	coordinator coordinator.Coordinator
	httpServer  *http.Server

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start starts the application components (HTTP server and background sync).
// This method blocks until the HTTP server stops or encounters an error.
func (app *WarsyncApp) Start() error {
	// Start sync coordinator in background
	go func() {
		if err := app.coordinator.Start(app.ctx); err != nil {
			slog.Error("Sync coordinator failed", "error", err)
		}
	}()

	// Start HTTP server (blocks until stopped)
	slog.Info("Server listening", "address", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the application with the given timeout.
// It stops the sync coordinator and then shuts down the HTTP server.
func (app *WarsyncApp) Stop(timeout time.Duration) error {
	slog.Info("Shutting down server...")

	// Stop sync coordinator first so no cycle is mid-commit during shutdown
	if err := app.coordinator.Stop(); err != nil {
		slog.Error("Failed to stop sync coordinator", "error", err)
	}

	// Cancel the application context (also releases storage)
	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *WarsyncApp) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server (useful for testing to get the actual port)
func (app *WarsyncApp) GetHTTPServer() *http.Server {
	return app.httpServer
}
