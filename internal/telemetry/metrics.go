package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SyncMetricsMeterName is the name used for the sync metrics meter
const SyncMetricsMeterName = "github.com/warfront-labs/warsync/sync"

// SyncMetrics holds the OpenTelemetry instruments for sync cycle metrics
type SyncMetrics struct {
	cycleDuration       metric.Float64Histogram
	consecutiveFailures metric.Int64Gauge
	languagesSynced     metric.Int64Gauge
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	cycleDuration, err := meter.Float64Histogram(
		"warsync_cycle_duration_seconds",
		metric.WithDescription("Duration of sync cycles in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	consecutiveFailures, err := meter.Int64Gauge(
		"warsync_consecutive_failures",
		metric.WithDescription("Number of consecutive failed sync cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	languagesSynced, err := meter.Int64Gauge(
		"warsync_languages_synced",
		metric.WithDescription("Number of languages present in the last committed snapshot, per artifact"),
		metric.WithUnit("{language}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		cycleDuration:       cycleDuration,
		consecutiveFailures: consecutiveFailures,
		languagesSynced:     languagesSynced,
	}, nil
}

// RecordCycleDuration records the duration and outcome of a sync cycle
func (m *SyncMetrics) RecordCycleDuration(ctx context.Context, duration time.Duration, success bool) {
	if m == nil || m.cycleDuration == nil {
		return
	}

	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

// RecordConsecutiveFailures records the current consecutive failure count
func (m *SyncMetrics) RecordConsecutiveFailures(ctx context.Context, count int64) {
	if m == nil || m.consecutiveFailures == nil {
		return
	}

	m.consecutiveFailures.Record(ctx, count)
}

// RecordLanguagesSynced records how many languages a committed snapshot
// carries for one artifact kind (status, feed, assignments)
func (m *SyncMetrics) RecordLanguagesSynced(ctx context.Context, artifact string, count int64) {
	if m == nil || m.languagesSynced == nil {
		return
	}

	m.languagesSynced.Record(ctx, count, metric.WithAttributes(
		attribute.String("artifact", artifact),
	))
}
