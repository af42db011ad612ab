package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warfront-labs/warsync/internal/arrowhead"
	"github.com/warfront-labs/warsync/internal/service"
	"github.com/warfront-labs/warsync/internal/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		WarID: 801,
		Info: &arrowhead.WarInfo{
			WarID: 801,
			Raw:   []byte(`{"warId":801}`),
		},
		Summary: &arrowhead.WarSummary{
			Raw: []byte(`{"galaxy_stats":{"deaths":12}}`),
		},
		Status: snapshot.TranslationMap{
			"en-US": []byte(`{"warId":801,"time":1000}`),
			"de-DE": []byte(`{"warId":801,"time":1000}`),
		},
		NewsFeed: snapshot.TranslationMap{
			"en-US": []byte(`[]`),
		},
		Assignments: snapshot.TranslationMap{},
		SyncedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemory_EmptyStoreReportsNotSynced(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.Meta(ctx)
	assert.ErrorIs(t, err, service.ErrNotSynced)

	_, err = m.WarInfo(ctx)
	assert.ErrorIs(t, err, service.ErrNotSynced)

	_, err = m.Summary(ctx)
	assert.ErrorIs(t, err, service.ErrNotSynced)

	_, err = m.Translation(ctx, snapshot.ArtifactStatus, "en-US")
	assert.ErrorIs(t, err, service.ErrNotSynced)
}

func TestMemory_StoreAndRead(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	snap := testSnapshot()

	require.NoError(t, m.Store(ctx, snap))

	meta, err := m.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(801), meta.WarID)
	assert.Equal(t, snap.SyncedAt, meta.SyncedAt)
	assert.Equal(t, []string{"de-DE", "en-US"}, meta.Languages[snapshot.ArtifactStatus])
	assert.Equal(t, []string{"en-US"}, meta.Languages[snapshot.ArtifactNewsFeed])
	assert.Empty(t, meta.Languages[snapshot.ArtifactAssignments])

	info, err := m.WarInfo(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"warId":801}`, string(info))

	summary, err := m.Summary(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"galaxy_stats":{"deaths":12}}`, string(summary))

	status, err := m.Translation(ctx, snapshot.ArtifactStatus, "de-DE")
	require.NoError(t, err)
	assert.JSONEq(t, `{"warId":801,"time":1000}`, string(status))
}

func TestMemory_TranslationErrors(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Store(ctx, testSnapshot()))

	// Language missing from the snapshot (its fetch failed or it was never
	// configured)
	_, err := m.Translation(ctx, snapshot.ArtifactStatus, "pl-PL")
	assert.ErrorIs(t, err, service.ErrLanguageNotFound)

	// Artifact kind with no languages at all
	_, err = m.Translation(ctx, snapshot.ArtifactAssignments, "en-US")
	assert.ErrorIs(t, err, service.ErrLanguageNotFound)

	// Unknown artifact kind
	_, err = m.Translation(ctx, "unknown", "en-US")
	assert.ErrorIs(t, err, service.ErrLanguageNotFound)
}

func TestMemory_StoreReplacesWholeSnapshot(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Store(ctx, testSnapshot()))

	next := testSnapshot()
	next.WarID = 802
	next.Status = snapshot.TranslationMap{"fr-FR": []byte(`{}`)}
	require.NoError(t, m.Store(ctx, next))

	meta, err := m.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(802), meta.WarID)
	assert.Equal(t, []string{"fr-FR"}, meta.Languages[snapshot.ArtifactStatus])

	// Languages from the replaced snapshot are gone
	_, err = m.Translation(ctx, snapshot.ArtifactStatus, "en-US")
	assert.ErrorIs(t, err, service.ErrLanguageNotFound)
}
