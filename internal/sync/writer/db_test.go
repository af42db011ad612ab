package writer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warfront-labs/warsync/internal/arrowhead"
	"github.com/warfront-labs/warsync/internal/snapshot"
)

func TestNewDBSnapshotWriter_RequiresPool(t *testing.T) {
	t.Parallel()

	_, err := NewDBSnapshotWriter(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pgx pool is required")
}

func TestStore_RejectsIncompleteSnapshots(t *testing.T) {
	t.Parallel()

	// Validation happens before any database access, so a writer with a
	// nil pool is safe here.
	w := &dbSnapshotWriter{}
	ctx := context.Background()

	err := w.Store(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot is required")

	err = w.Store(ctx, &snapshot.Snapshot{WarID: 801})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing war info or summary")

	err = w.Store(ctx, &snapshot.Snapshot{
		WarID: 801,
		Info:  &arrowhead.WarInfo{WarID: 801},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing war info or summary")
}
