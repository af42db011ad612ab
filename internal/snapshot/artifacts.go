package snapshot

// Artifact kinds for the translated payloads carried by a snapshot. The
// values are stable identifiers used in logs, metrics and storage rows.
const (
	// ArtifactStatus is the per-language war status payload
	ArtifactStatus = "status"

	// ArtifactNewsFeed is the per-language news feed payload
	ArtifactNewsFeed = "newsfeed"

	// ArtifactAssignments is the per-language assignment payload
	ArtifactAssignments = "assignments"
)
