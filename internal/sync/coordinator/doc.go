// Package coordinator drives the periodic synchronization loop.
//
// The coordinator owns the schedule: it runs one cycle at a time through the
// sync.Manager, sleeps between cycles, and never lets a cycle failure escape
// the loop. The loop moves through a fixed set of states:
//
//	Idle -> Running -> Sleeping -> Idle -> ...        (normal operation)
//	any state -> Stopped                              (context cancelled)
//
// On success the consecutive failure count resets and the next sleep is the
// nominal interval. On failure the count increments and the sleep shortens
// to a linear backoff ramp (one second per consecutive failure, capped at
// the nominal interval), so transient failures are retried quickly while
// sustained outages settle back to the normal cadence.
//
// Cancellation is observed during the sleep and inside a running cycle; in
// both cases the loop exits promptly without starting another cycle.
package coordinator
