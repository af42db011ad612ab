package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warfront-labs/warsync/internal/config"
	"github.com/warfront-labs/warsync/internal/db"
	"github.com/warfront-labs/warsync/internal/service"
	servicedb "github.com/warfront-labs/warsync/internal/service/db"
	"github.com/warfront-labs/warsync/internal/store"
	"github.com/warfront-labs/warsync/internal/sync/writer"
)

// storageComponents bundles the write and read sides of snapshot storage.
// Both sides always point at the same backing store.
type storageComponents struct {
	writer  writer.SnapshotWriter
	service service.SnapshotService
	cleanup func()
}

// buildStorage is the single decision point between database and in-memory
// storage. With no database configured, one shared in-memory store serves
// both the sync writer and the read API.
func buildStorage(ctx context.Context, cfg *config.Config) (*storageComponents, error) {
	if cfg.Database == nil {
		slog.Info("No database configured, storing snapshots in memory")
		mem := store.NewMemory()
		return &storageComponents{
			writer:  mem,
			service: mem,
			cleanup: func() {},
		}, nil
	}

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	snapWriter, err := writer.NewDBSnapshotWriter(pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshot writer: %w", err)
	}

	snapService, err := servicedb.NewSnapshotService(pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshot service: %w", err)
	}

	slog.Info("Storing snapshots in PostgreSQL",
		"host", cfg.Database.Host,
		"database", cfg.Database.Database)

	return &storageComponents{
		writer:  snapWriter,
		service: snapService,
		cleanup: pool.Close,
	}, nil
}
