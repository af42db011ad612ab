// Package service defines the read-side interface over stored war snapshots.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotSynced is returned when no snapshot has been stored yet
var ErrNotSynced = errors.New("no war snapshot has been synchronized yet")

// ErrLanguageNotFound is returned when the requested language is absent from
// the stored snapshot (its fetch failed during the last cycle, or it was
// never configured)
var ErrLanguageNotFound = errors.New("language not present in the stored snapshot")

// Meta describes the stored snapshot without its payloads
type Meta struct {
	// WarID identifies the stored war season
	WarID int64 `json:"war_id"`

	// SyncedAt is when the snapshot was composed
	SyncedAt time.Time `json:"synced_at"`

	// Languages lists the languages present per artifact kind
	Languages map[string][]string `json:"languages"`
}

// SnapshotService provides read access to the latest stored war snapshot
type SnapshotService interface {
	// Meta returns metadata about the stored snapshot
	Meta(ctx context.Context) (*Meta, error)

	// WarInfo returns the stored language-independent war info payload
	WarInfo(ctx context.Context) (json.RawMessage, error)

	// Summary returns the stored war summary payload
	Summary(ctx context.Context) (json.RawMessage, error)

	// Translation returns the stored payload for one artifact kind and
	// language. Artifact is one of the snapshot.Artifact* constants.
	Translation(ctx context.Context, artifact, language string) (json.RawMessage, error)
}
