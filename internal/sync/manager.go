package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/warfront-labs/warsync/internal/arrowhead"
	"github.com/warfront-labs/warsync/internal/snapshot"
	"github.com/warfront-labs/warsync/internal/sync/writer"
)

// Result contains the result of a successful sync cycle
type Result struct {
	// WarID is the war season the cycle synchronized
	WarID int64

	// Languages counts the languages present per artifact kind
	Languages map[string]int
}

// Manager runs one complete synchronization cycle
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks github.com/warfront-labs/warsync/internal/sync Manager
type Manager interface {
	// PerformSync executes one cycle: resolve the current war, fetch its
	// artifacts, and commit the composed snapshot to storage
	PerformSync(ctx context.Context) (*Result, error)
}

// defaultSyncManager is the default implementation of Manager
type defaultSyncManager struct {
	client    arrowhead.Client
	writer    writer.SnapshotWriter
	languages []string

	// now is swappable for tests
	now func() time.Time
}

// NewDefaultSyncManager creates a new defaultSyncManager. languages is the
// ordered language set from configuration; it may be empty, in which case no
// translated artifact is fetched and the snapshot carries empty maps.
func NewDefaultSyncManager(client arrowhead.Client, snapWriter writer.SnapshotWriter, languages []string) Manager {
	return &defaultSyncManager{
		client:    client,
		writer:    snapWriter,
		languages: languages,
		now:       time.Now,
	}
}

// PerformSync executes one synchronization cycle.
//
// The war id gates everything downstream, so steps run strictly in order:
// resolve war id, fetch war info and summary, then the three translated
// fan-outs (which are independent and run concurrently with each other),
// then the storage commit. Per-language failures inside a fan-out are
// absorbed; any other failure aborts the cycle.
func (s *defaultSyncManager) PerformSync(ctx context.Context) (*Result, error) {
	logger := slog.With("cycle_id", uuid.NewString())

	warID, err := s.client.CurrentWarID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current war: %w", err)
	}
	logger = logger.With("war_id", warID)

	info, err := s.client.WarInfo(ctx, warID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch war info: %w", err)
	}

	summary, err := s.client.Summary(ctx, warID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch war summary: %w", err)
	}

	// The three fan-outs only fail on cancellation, so the shared group
	// context never cancels siblings because of a per-language failure.
	var status, feed, assignments snapshot.TranslationMap
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var fanErr error
		status, fanErr = fanOut(groupCtx, snapshot.ArtifactStatus, s.languages,
			func(ctx context.Context, language string) ([]byte, error) {
				return s.client.Status(ctx, warID, language)
			})
		return fanErr
	})
	group.Go(func() error {
		var fanErr error
		feed, fanErr = fanOut(groupCtx, snapshot.ArtifactNewsFeed, s.languages,
			func(ctx context.Context, language string) ([]byte, error) {
				return s.client.NewsFeed(ctx, warID, language)
			})
		return fanErr
	})
	group.Go(func() error {
		var fanErr error
		assignments, fanErr = fanOut(groupCtx, snapshot.ArtifactAssignments, s.languages,
			func(ctx context.Context, language string) ([]byte, error) {
				return s.client.Assignments(ctx, warID, language)
			})
		return fanErr
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot.Snapshot{
		WarID:       warID,
		Info:        info,
		Summary:     summary,
		Status:      status,
		NewsFeed:    feed,
		Assignments: assignments,
		SyncedAt:    s.now(),
	}

	if err := s.writer.Store(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logger.Info("Snapshot committed",
		"status_languages", len(status),
		"feed_languages", len(feed),
		"assignment_languages", len(assignments))

	return &Result{
		WarID: warID,
		Languages: map[string]int{
			snapshot.ArtifactStatus:      len(status),
			snapshot.ArtifactNewsFeed:    len(feed),
			snapshot.ArtifactAssignments: len(assignments),
		},
	}, nil
}
