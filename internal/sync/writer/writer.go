// Package writer contains the SnapshotWriter interface and implementations
package writer

import (
	"context"

	"github.com/warfront-labs/warsync/internal/snapshot"
)

// SnapshotWriter defines the interface needed to persist a completed war
// snapshot. Store is expected to be atomic from the caller's point of view
// and idempotent for repeated identical snapshots.
//
//go:generate mockgen -destination=mocks/mock_snapshot_writer.go -package=mocks github.com/warfront-labs/warsync/internal/sync/writer SnapshotWriter
type SnapshotWriter interface {
	// Store commits a complete snapshot in a single call. Ownership of the
	// snapshot transfers to the writer.
	Store(ctx context.Context, snap *snapshot.Snapshot) error
}
