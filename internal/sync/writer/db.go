package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warfront-labs/warsync/internal/snapshot"
)

const (
	upsertWarSQL = `
		INSERT INTO wars (war_id, info, summary, synced_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (war_id) DO UPDATE
		SET info = EXCLUDED.info,
		    summary = EXCLUDED.summary,
		    synced_at = EXCLUDED.synced_at`

	deleteTranslationsSQL = `DELETE FROM war_translations WHERE war_id = $1`

	insertTranslationSQL = `
		INSERT INTO war_translations (war_id, artifact, language, payload)
		VALUES ($1, $2, $3, $4)`
)

// dbSnapshotWriter is a SnapshotWriter implementation that persists snapshots
// to PostgreSQL
type dbSnapshotWriter struct {
	pool *pgxpool.Pool
}

// NewDBSnapshotWriter creates a new dbSnapshotWriter with the given
// connection pool. The caller is responsible for closing the pool when done.
func NewDBSnapshotWriter(pool *pgxpool.Pool) (SnapshotWriter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &dbSnapshotWriter{pool: pool}, nil
}

// Store saves a snapshot to database storage.
//
// The war row is upserted and the translation rows are replaced wholesale,
// all within a serializable transaction, so readers observe either the
// previous snapshot or the new one but never a mix. Replaying an identical
// snapshot converges to the same rows.
func (d *dbSnapshotWriter) Store(ctx context.Context, snap *snapshot.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}
	if snap.Info == nil || snap.Summary == nil {
		return fmt.Errorf("snapshot is missing war info or summary")
	}

	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit returns pgx.ErrTxClosed,
		// which is the expected no-op; anything else is worth a trace.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("Failed to roll back snapshot transaction", "error", rollbackErr)
		}
	}()

	if _, err := tx.Exec(ctx, upsertWarSQL,
		snap.WarID, snap.Info.Raw, snap.Summary.Raw, snap.SyncedAt); err != nil {
		return fmt.Errorf("failed to upsert war row: %w", err)
	}

	if _, err := tx.Exec(ctx, deleteTranslationsSQL, snap.WarID); err != nil {
		return fmt.Errorf("failed to clear translation rows: %w", err)
	}

	batch := &pgx.Batch{}
	queueTranslations(batch, snap.WarID, snapshot.ArtifactStatus, snap.Status)
	queueTranslations(batch, snap.WarID, snapshot.ArtifactNewsFeed, snap.NewsFeed)
	queueTranslations(batch, snap.WarID, snapshot.ArtifactAssignments, snap.Assignments)

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert translation rows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// queueTranslations appends one insert per language to the batch
func queueTranslations(batch *pgx.Batch, warID int64, artifact string, m snapshot.TranslationMap) {
	for language, payload := range m {
		batch.Queue(insertTranslationSQL, warID, artifact, language, payload)
	}
}
