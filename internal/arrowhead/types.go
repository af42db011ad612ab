package arrowhead

import "encoding/json"

// WarID is the response of the current-war lookup.
type WarID struct {
	ID int64 `json:"id"`
}

// WarInfo is the season-scoped, language-independent description of a war.
// Only the fields the server inspects are decoded; Raw preserves the full
// upstream payload for storage.
type WarInfo struct {
	WarID                int64  `json:"warId"`
	StartDate            int64  `json:"startDate"`
	EndDate              int64  `json:"endDate"`
	MinimumClientVersion string `json:"minimumClientVersion"`

	Raw json.RawMessage `json:"-"`
}

// GalaxyStats aggregates war-wide statistics.
type GalaxyStats struct {
	MissionsWon  int64 `json:"missionsWon"`
	MissionsLost int64 `json:"missionsLost"`
	MissionTime  int64 `json:"missionTime"`
	Deaths       int64 `json:"deaths"`
	Revives      int64 `json:"revives"`
	Accidentals  int64 `json:"accidentals"`
}

// WarSummary is the galaxy-wide statistics summary for a war.
type WarSummary struct {
	GalaxyStats GalaxyStats `json:"galaxy_stats"`

	Raw json.RawMessage `json:"-"`
}
