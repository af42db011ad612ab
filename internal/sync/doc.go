// Package sync implements the war synchronization cycle: resolving the
// current war season, fetching the season-wide artifacts, fanning out the
// translated artifacts across all configured languages, and committing the
// composed snapshot to storage.
//
// The package is built around two pieces:
//
//   - Manager drives a single cycle. A cycle fails as a whole when the war
//     id, war info, summary, or the final storage commit fails. Per-language
//     fetch failures inside a fan-out are absorbed: the failing language is
//     logged and dropped from the snapshot, and the cycle continues with
//     whatever languages succeeded.
//
//   - The fan-out helper runs one fetch goroutine per language and folds
//     partial failures into the result map. Absence of a key means the
//     language failed this cycle; there are no sentinel values.
//
// Scheduling of cycles, failure counting and backoff live in the
// coordinator subpackage; persistence lives in the writer subpackage.
package sync
