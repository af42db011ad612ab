package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/warfront-labs/warsync/internal/snapshot"
	pkgsync "github.com/warfront-labs/warsync/internal/sync"
	"github.com/warfront-labs/warsync/internal/telemetry"
)

// Coordinator manages background synchronization scheduling and execution
type Coordinator interface {
	// Start begins the sync loop. The first cycle runs immediately.
	// Blocks until the context is cancelled; cycle failures never
	// terminate the loop.
	Start(ctx context.Context) error

	// Stop gracefully stops the coordinator and waits for the loop to exit
	Stop() error
}

// defaultCoordinator is the default implementation of Coordinator
type defaultCoordinator struct {
	manager  pkgsync.Manager
	interval time.Duration

	// failures counts consecutive failed cycles; owned by the loop
	// goroutine and mutated only between cycles
	failures int

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}

	syncMetrics *telemetry.SyncMetrics
}

// Option is a function that configures the coordinator
type Option func(*defaultCoordinator)

// WithSyncMetrics sets the sync metrics for the coordinator
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(c *defaultCoordinator) {
		c.syncMetrics = metrics
	}
}

// New creates a new coordinator with injected dependencies. A non-positive
// interval is a configuration error and is rejected before the loop starts.
func New(manager pkgsync.Manager, interval time.Duration, opts ...Option) (Coordinator, error) {
	if manager == nil {
		return nil, fmt.Errorf("sync manager is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("sync interval must be positive, got %s", interval)
	}

	c := &defaultCoordinator{
		manager:  manager,
		interval: interval,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Start begins the sync loop
func (c *defaultCoordinator) Start(ctx context.Context) error {
	slog.Info("Starting sync coordinator", "interval", c.interval)

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	defer func() {
		close(c.done)
		slog.Info("Sync coordinator shut down")
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-loopCtx.Done():
			slog.Info("Sync coordinator stopping")
			return nil
		case <-timer.C:
		}

		delay := c.runCycle(loopCtx)
		timer.Reset(delay)
	}
}

// Stop gracefully stops the coordinator
func (c *defaultCoordinator) Stop() error {
	if c.cancelFunc != nil {
		slog.Info("Stopping sync coordinator")
		c.cancelFunc()
		<-c.done
	}
	return nil
}

// runCycle executes one sync cycle and returns the delay before the next
// one. A failed cycle increments the consecutive failure count and shortens
// the delay via the backoff ramp; a successful cycle resets both.
func (c *defaultCoordinator) runCycle(ctx context.Context) time.Duration {
	startTime := time.Now()
	result, err := c.manager.PerformSync(ctx)
	cycleDuration := time.Since(startTime)

	if err != nil {
		// Shutdown mid-cycle is not a failure; the caller's select
		// observes the cancelled context and exits the loop. Only the
		// loop context decides that: a collaborator timing out on its
		// own deadline is an ordinary transient failure and must feed
		// the backoff ramp like any other error.
		if ctx.Err() != nil {
			slog.Debug("Sync cycle aborted by shutdown", "duration", cycleDuration)
			return c.interval
		}

		c.failures++
		slog.Error("Sync cycle failed",
			"error", err,
			"consecutive_failures", c.failures,
			"duration", cycleDuration)

		c.syncMetrics.RecordCycleDuration(ctx, cycleDuration, false)
		c.syncMetrics.RecordConsecutiveFailures(ctx, int64(c.failures))

		return nextDelay(c.failures, c.interval)
	}

	c.failures = 0
	slog.Info("Sync cycle completed",
		"war_id", result.WarID,
		"duration", cycleDuration)

	c.syncMetrics.RecordCycleDuration(ctx, cycleDuration, true)
	c.syncMetrics.RecordConsecutiveFailures(ctx, 0)
	for _, artifact := range []string{snapshot.ArtifactStatus, snapshot.ArtifactNewsFeed, snapshot.ArtifactAssignments} {
		c.syncMetrics.RecordLanguagesSynced(ctx, artifact, int64(result.Languages[artifact]))
	}

	return c.interval
}
