// Package snapshot defines the composed result of one synchronization cycle.
package snapshot

import (
	"time"

	"github.com/warfront-labs/warsync/internal/arrowhead"
)

// TranslationMap maps a language identifier (e.g. "en-US") to the raw JSON
// payload fetched for that language. A language whose fetch failed during the
// cycle is simply absent from the map; there is no sentinel value.
type TranslationMap map[string][]byte

// Languages returns the language identifiers present in the map, in
// unspecified order.
func (m TranslationMap) Languages() []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	return langs
}

// Snapshot is the complete state fetched by one synchronization cycle. It is
// handed to storage as a single unit; ownership transfers on commit.
type Snapshot struct {
	// WarID identifies the war season this snapshot belongs to.
	WarID int64

	// Info is the season-scoped, language-independent war info.
	Info *arrowhead.WarInfo

	// Summary is the season-scoped galactic war summary.
	Summary *arrowhead.WarSummary

	// Status holds the per-language war status payloads.
	Status TranslationMap

	// NewsFeed holds the per-language news feed payloads.
	NewsFeed TranslationMap

	// Assignments holds the per-language assignment payloads.
	Assignments TranslationMap

	// SyncedAt is the time the snapshot was composed.
	SyncedAt time.Time
}
