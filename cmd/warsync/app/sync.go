package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/warfront-labs/warsync/internal/arrowhead"
	"github.com/warfront-labs/warsync/internal/config"
	"github.com/warfront-labs/warsync/internal/db"
	pkgsync "github.com/warfront-labs/warsync/internal/sync"
	"github.com/warfront-labs/warsync/internal/sync/writer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single sync cycle and exit",
	Long: `Run one synchronization cycle against the remote war API and commit
the resulting snapshot to the configured database, then exit. Useful for
cron-style deployments and for verifying configuration.

A database must be configured; a one-shot cycle into in-memory storage
would be discarded on exit.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	if err := syncCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database == nil {
		return fmt.Errorf("database configuration is required for one-shot sync")
	}

	timeout, err := cfg.SourceTimeout()
	if err != nil {
		return fmt.Errorf("invalid source timeout: %w", err)
	}
	client, err := arrowhead.NewClient(cfg.Source.Endpoint, timeout)
	if err != nil {
		return fmt.Errorf("failed to create war API client: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	snapWriter, err := writer.NewDBSnapshotWriter(pool)
	if err != nil {
		return fmt.Errorf("failed to create snapshot writer: %w", err)
	}

	manager := pkgsync.NewDefaultSyncManager(client, snapWriter, cfg.Sync.Languages)
	result, err := manager.PerformSync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	slog.Info("Sync completed",
		"war_id", result.WarID,
		"languages", result.Languages)
	return nil
}
