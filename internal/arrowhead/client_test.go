package arrowhead

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", 5*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint is required")
}

func TestCurrentWarID(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"/WarSeason/current/WarID": `{"id":801}`,
	})

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)

	warID, err := client.CurrentWarID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(801), warID)
}

func TestCurrentWarID_MalformedResponse(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"/WarSeason/current/WarID": `not json`,
	})

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.CurrentWarID(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode war id response")
}

func TestWarInfo(t *testing.T) {
	t.Parallel()

	payload := `{"warId":801,"startDate":1000,"endDate":2000,"minimumClientVersion":"0.3.0","extra":"kept"}`
	server := newTestServer(t, map[string]string{
		"/WarSeason/801/WarInfo": payload,
	})

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)

	info, err := client.WarInfo(context.Background(), 801)
	require.NoError(t, err)
	assert.Equal(t, int64(801), info.WarID)
	assert.Equal(t, int64(1000), info.StartDate)
	assert.Equal(t, int64(2000), info.EndDate)
	assert.Equal(t, "0.3.0", info.MinimumClientVersion)

	// Raw preserves the full upstream payload, including unknown fields
	assert.JSONEq(t, payload, string(info.Raw))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	payload := `{"galaxy_stats":{"missionsWon":10,"missionsLost":2,"deaths":55}}`
	server := newTestServer(t, map[string]string{
		"/Stats/War/801/Summary": payload,
	})

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)

	summary, err := client.Summary(context.Background(), 801)
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.GalaxyStats.MissionsWon)
	assert.Equal(t, int64(55), summary.GalaxyStats.Deaths)
	assert.JSONEq(t, payload, string(summary.Raw))
}

func TestTranslatedArtifacts_SetAcceptLanguage(t *testing.T) {
	t.Parallel()

	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte(`{"translated":true}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	body, err := client.Status(ctx, 801, "de-DE")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", gotLanguage)
	assert.JSONEq(t, `{"translated":true}`, string(body))

	_, err = client.NewsFeed(ctx, 801, "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", gotLanguage)

	_, err = client.Assignments(ctx, 801, "pl-PL")
	require.NoError(t, err)
	assert.Equal(t, "pl-PL", gotLanguage)
}

func TestTranslatedArtifacts_Paths(t *testing.T) {
	t.Parallel()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Status(ctx, 801, "en-US")
	require.NoError(t, err)
	_, err = client.NewsFeed(ctx, 801, "en-US")
	require.NoError(t, err)
	_, err = client.Assignments(ctx, 801, "en-US")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/WarSeason/801/Status",
		"/NewsFeed/801",
		"/v2/Assignment/War/801",
	}, paths)
}

func TestTranslated_RejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"truncated":`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Status(context.Background(), 801, "en-US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed JSON payload")
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"/WarSeason/current/WarID": `{"id":801}`,
	})

	client, err := NewClient(server.URL+"/", 5*time.Second)
	require.NoError(t, err)

	warID, err := client.CurrentWarID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(801), warID)
}
