package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/warfront-labs/warsync/internal/snapshot"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestNewSyncMetrics_NilProvider(t *testing.T) {
	t.Parallel()

	metrics, err := NewSyncMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, metrics)
}

func TestSyncMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var metrics *SyncMetrics
	ctx := context.Background()

	// None of these may panic on a nil receiver
	metrics.RecordCycleDuration(ctx, time.Second, true)
	metrics.RecordConsecutiveFailures(ctx, 3)
	metrics.RecordLanguagesSynced(ctx, snapshot.ArtifactStatus, 2)
}

func TestSyncMetrics_RecordCycleDuration(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewSyncMetrics(provider)
	require.NoError(t, err)
	require.NotNil(t, metrics)

	metrics.RecordCycleDuration(context.Background(), 2*time.Second, true)
	metrics.RecordCycleDuration(context.Background(), 500*time.Millisecond, false)

	m, ok := findMetric(collect(t, reader), "warsync_cycle_duration_seconds")
	require.True(t, ok)

	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2, "success and failure are separate series")
}

func TestSyncMetrics_RecordConsecutiveFailures(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewSyncMetrics(provider)
	require.NoError(t, err)

	metrics.RecordConsecutiveFailures(context.Background(), 4)

	m, ok := findMetric(collect(t, reader), "warsync_consecutive_failures")
	require.True(t, ok)

	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(4), gauge.DataPoints[0].Value)
}

func TestSyncMetrics_RecordLanguagesSynced(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewSyncMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordLanguagesSynced(ctx, snapshot.ArtifactStatus, 3)
	metrics.RecordLanguagesSynced(ctx, snapshot.ArtifactNewsFeed, 2)
	metrics.RecordLanguagesSynced(ctx, snapshot.ArtifactAssignments, 0)

	m, ok := findMetric(collect(t, reader), "warsync_languages_synced")
	require.True(t, ok)

	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, gauge.DataPoints, 3, "one series per artifact kind")
}

func TestNewMeterProvider_DisabledConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*Config{nil, {Enabled: false}} {
		provider, err := NewMeterProvider(context.Background(), cfg)
		require.NoError(t, err)
		require.NotNil(t, provider)

		// The no-op provider still hands out working instruments
		metrics, err := NewSyncMetrics(provider)
		require.NoError(t, err)
		metrics.RecordCycleDuration(context.Background(), time.Second, true)
	}
}
