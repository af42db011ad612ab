// Package db provides the PostgreSQL-backed SnapshotService implementation.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warfront-labs/warsync/internal/service"
)

const (
	latestMetaSQL = `SELECT war_id, synced_at FROM wars ORDER BY synced_at DESC LIMIT 1`

	latestInfoSQL = `SELECT info FROM wars ORDER BY synced_at DESC LIMIT 1`

	latestSummarySQL = `SELECT summary FROM wars ORDER BY synced_at DESC LIMIT 1`

	languagesSQL = `
		SELECT artifact, language FROM war_translations
		WHERE war_id = $1
		ORDER BY artifact, language`

	translationSQL = `
		SELECT payload FROM war_translations
		WHERE war_id = (SELECT war_id FROM wars ORDER BY synced_at DESC LIMIT 1)
		  AND artifact = $1 AND language = $2`
)

// snapshotService reads the latest stored snapshot from PostgreSQL
type snapshotService struct {
	pool *pgxpool.Pool
}

// NewSnapshotService creates a SnapshotService backed by the given pool.
// The caller is responsible for closing the pool when done.
func NewSnapshotService(pool *pgxpool.Pool) (service.SnapshotService, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &snapshotService{pool: pool}, nil
}

// Meta returns metadata about the stored snapshot
func (s *snapshotService) Meta(ctx context.Context) (*service.Meta, error) {
	meta := &service.Meta{Languages: map[string][]string{}}

	err := s.pool.QueryRow(ctx, latestMetaSQL).Scan(&meta.WarID, &meta.SyncedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotSynced
		}
		return nil, fmt.Errorf("failed to query latest war: %w", err)
	}

	rows, err := s.pool.Query(ctx, languagesSQL, meta.WarID)
	if err != nil {
		return nil, fmt.Errorf("failed to query translation languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var artifact, language string
		if err := rows.Scan(&artifact, &language); err != nil {
			return nil, fmt.Errorf("failed to scan translation row: %w", err)
		}
		meta.Languages[artifact] = append(meta.Languages[artifact], language)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read translation rows: %w", err)
	}

	return meta, nil
}

// WarInfo returns the stored war info payload
func (s *snapshotService) WarInfo(ctx context.Context) (json.RawMessage, error) {
	return s.latestPayload(ctx, latestInfoSQL)
}

// Summary returns the stored war summary payload
func (s *snapshotService) Summary(ctx context.Context) (json.RawMessage, error) {
	return s.latestPayload(ctx, latestSummarySQL)
}

// Translation returns the stored payload for one artifact kind and language
func (s *snapshotService) Translation(ctx context.Context, artifact, language string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := s.pool.QueryRow(ctx, translationSQL, artifact, language).Scan(&payload)
	if err == nil {
		return payload, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to query translation: %w", err)
	}

	// No row: either nothing has been synced yet or the language is absent
	var warID int64
	var syncedAt time.Time
	if err := s.pool.QueryRow(ctx, latestMetaSQL).Scan(&warID, &syncedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotSynced
		}
		return nil, fmt.Errorf("failed to query latest war: %w", err)
	}
	return nil, service.ErrLanguageNotFound
}

// latestPayload returns one JSONB column of the most recent war row
func (s *snapshotService) latestPayload(ctx context.Context, query string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := s.pool.QueryRow(ctx, query).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotSynced
		}
		return nil, fmt.Errorf("failed to query latest war: %w", err)
	}
	return payload, nil
}
