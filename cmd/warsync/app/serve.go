package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/warfront-labs/warsync/internal/app"
	"github.com/warfront-labs/warsync/internal/config"
	"github.com/warfront-labs/warsync/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the warsync server",
	Long: `Start the warsync server. The server continuously synchronizes the
current war season snapshot in the background and serves the stored
snapshot over a read-only REST API.

The server requires a configuration file (--config) that specifies:
- The remote war API endpoint
- Sync interval and language list
- Storage and telemetry settings

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

// defaultGracefulTimeout leaves room for an in-flight sync cycle to abort
const defaultGracefulTimeout = 30 * time.Second

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		slog.Error("Failed to bind address flag", "error", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		slog.Error("Failed to bind config flag", "error", err)
		os.Exit(1)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.Info("Loaded configuration",
		"path", configPath,
		"endpoint", cfg.Source.Endpoint,
		"languages", cfg.Sync.Languages)

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}

	opts := []app.WarsyncAppOptions{
		app.WithConfig(cfg),
		app.WithMeterProvider(meterProvider),
	}
	if address := viper.GetString("address"); address != "" {
		opts = append(opts, app.WithAddress(address))
	}

	warsyncApp, err := app.NewWarsyncApp(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	// Start server in goroutine so we can wait for shutdown signals
	errCh := make(chan error, 1)
	go func() {
		errCh <- warsyncApp.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	return warsyncApp.Stop(defaultGracefulTimeout)
}
