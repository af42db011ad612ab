package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warfront-labs/warsync/internal/api"
	"github.com/warfront-labs/warsync/internal/arrowhead"
	"github.com/warfront-labs/warsync/internal/service"
	"github.com/warfront-labs/warsync/internal/snapshot"
	"github.com/warfront-labs/warsync/internal/store"
)

func syncedStore(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	err := m.Store(context.Background(), &snapshot.Snapshot{
		WarID: 801,
		Info: &arrowhead.WarInfo{
			WarID: 801,
			Raw:   []byte(`{"warId":801,"startDate":1000}`),
		},
		Summary: &arrowhead.WarSummary{
			Raw: []byte(`{"galaxy_stats":{"deaths":42}}`),
		},
		Status: snapshot.TranslationMap{
			"en-US": []byte(`{"warId":801}`),
			"de-DE": []byte(`{"warId":801}`),
		},
		NewsFeed: snapshot.TranslationMap{
			"en-US": []byte(`[{"id":1}]`),
		},
		Assignments: snapshot.TranslationMap{
			"en-US": []byte(`[]`),
		},
		SyncedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return m
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_NotSyncedReturns503(t *testing.T) {
	t.Parallel()

	handler := api.NewServer(store.NewMemory(), api.WithDefaultLanguage("en-US"))

	for _, path := range []string{
		"/v1/war",
		"/v1/war/info",
		"/v1/war/summary",
		"/v1/war/status",
		"/v1/war/feed",
		"/v1/war/assignments",
	} {
		rec := doRequest(t, handler, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "path %s", path)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"], "path %s", path)
	}
}

func TestRoutes_Meta(t *testing.T) {
	t.Parallel()

	handler := api.NewServer(syncedStore(t))
	rec := doRequest(t, handler, "/v1/war")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta service.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, int64(801), meta.WarID)
	assert.Equal(t, []string{"de-DE", "en-US"}, meta.Languages[snapshot.ArtifactStatus])
	assert.Equal(t, []string{"en-US"}, meta.Languages[snapshot.ArtifactNewsFeed])
}

func TestRoutes_RawPayloads(t *testing.T) {
	t.Parallel()

	handler := api.NewServer(syncedStore(t))

	rec := doRequest(t, handler, "/v1/war/info")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"warId":801,"startDate":1000}`, rec.Body.String())

	rec = doRequest(t, handler, "/v1/war/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"galaxy_stats":{"deaths":42}}`, rec.Body.String())
}

func TestRoutes_TranslatedLanguageSelection(t *testing.T) {
	t.Parallel()

	handler := api.NewServer(syncedStore(t), api.WithDefaultLanguage("en-US"))

	// Explicit language
	rec := doRequest(t, handler, "/v1/war/status?language=de-DE")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"warId":801}`, rec.Body.String())

	// Falls back to the configured default
	rec = doRequest(t, handler, "/v1/war/feed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())

	// Missing language in snapshot
	rec = doRequest(t, handler, "/v1/war/status?language=pl-PL")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_TranslatedWithoutDefaultLanguage(t *testing.T) {
	t.Parallel()

	handler := api.NewServer(syncedStore(t))

	// No query parameter and no configured default
	rec := doRequest(t, handler, "/v1/war/status")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "language")
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	handler := api.NewServer(store.NewMemory())

	for _, path := range []string{"/health", "/readiness"} {
		rec := doRequest(t, handler, path)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		assert.Equal(t, "OK", rec.Body.String(), "path %s", path)
	}

	rec := doRequest(t, handler, "/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var version map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &version))
	assert.Contains(t, version, "version")
}
