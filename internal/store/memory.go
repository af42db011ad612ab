// Package store provides the in-memory snapshot store used when no database
// is configured. It implements both the sync writer and the read service, so
// the coordinator and the HTTP API share one value.
package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/warfront-labs/warsync/internal/service"
	"github.com/warfront-labs/warsync/internal/snapshot"
)

// Memory holds the most recent snapshot behind a RWMutex. Store replaces the
// whole snapshot in one step, so readers never observe a partially applied
// cycle.
type Memory struct {
	mu   sync.RWMutex
	snap *snapshot.Snapshot
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// Store commits a snapshot, replacing any previous one. It implements
// writer.SnapshotWriter and never fails.
func (m *Memory) Store(_ context.Context, snap *snapshot.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	return nil
}

// Meta returns metadata about the stored snapshot
func (m *Memory) Meta(_ context.Context) (*service.Meta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return nil, service.ErrNotSynced
	}

	return &service.Meta{
		WarID:    m.snap.WarID,
		SyncedAt: m.snap.SyncedAt,
		Languages: map[string][]string{
			snapshot.ArtifactStatus:      sortedLanguages(m.snap.Status),
			snapshot.ArtifactNewsFeed:    sortedLanguages(m.snap.NewsFeed),
			snapshot.ArtifactAssignments: sortedLanguages(m.snap.Assignments),
		},
	}, nil
}

// WarInfo returns the stored war info payload
func (m *Memory) WarInfo(_ context.Context) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil || m.snap.Info == nil {
		return nil, service.ErrNotSynced
	}
	return m.snap.Info.Raw, nil
}

// Summary returns the stored war summary payload
func (m *Memory) Summary(_ context.Context) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil || m.snap.Summary == nil {
		return nil, service.ErrNotSynced
	}
	return m.snap.Summary.Raw, nil
}

// Translation returns the stored payload for one artifact kind and language
func (m *Memory) Translation(_ context.Context, artifact, language string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return nil, service.ErrNotSynced
	}

	var translations snapshot.TranslationMap
	switch artifact {
	case snapshot.ArtifactStatus:
		translations = m.snap.Status
	case snapshot.ArtifactNewsFeed:
		translations = m.snap.NewsFeed
	case snapshot.ArtifactAssignments:
		translations = m.snap.Assignments
	default:
		return nil, service.ErrLanguageNotFound
	}

	payload, ok := translations[language]
	if !ok {
		return nil, service.ErrLanguageNotFound
	}
	return payload, nil
}

// sortedLanguages returns the languages of a translation map in stable order
func sortedLanguages(m snapshot.TranslationMap) []string {
	langs := m.Languages()
	sort.Strings(langs)
	return langs
}
