// Package v1 provides the REST API handlers for war snapshot access.
package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warfront-labs/warsync/internal/service"
	"github.com/warfront-labs/warsync/internal/snapshot"
	"github.com/warfront-labs/warsync/internal/versions"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes defines the routes for the war snapshot API with dependency injection
type Routes struct {
	service         service.SnapshotService
	defaultLanguage string
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.SnapshotService, defaultLanguage string) *Routes {
	return &Routes{
		service:         svc,
		defaultLanguage: defaultLanguage,
	}
}

// Router creates a new router for the war snapshot API
func Router(svc service.SnapshotService, defaultLanguage string) http.Handler {
	routes := NewRoutes(svc, defaultLanguage)

	r := chi.NewRouter()

	r.Get("/war", routes.getMeta)
	r.Get("/war/info", routes.getWarInfo)
	r.Get("/war/summary", routes.getSummary)
	r.Get("/war/status", routes.getTranslated(snapshot.ArtifactStatus))
	r.Get("/war/feed", routes.getTranslated(snapshot.ArtifactNewsFeed))
	r.Get("/war/assignments", routes.getTranslated(snapshot.ArtifactAssignments))

	return r
}

// HealthRouter creates a router for liveness and version endpoints
func HealthRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, versions.GetVersionInfo())
	})

	return r
}

// getMeta handles GET /v1/war
func (rt *Routes) getMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := rt.service.Meta(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// getWarInfo handles GET /v1/war/info
func (rt *Routes) getWarInfo(w http.ResponseWriter, r *http.Request) {
	payload, err := rt.service.WarInfo(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeRawJSON(w, payload)
}

// getSummary handles GET /v1/war/summary
func (rt *Routes) getSummary(w http.ResponseWriter, r *http.Request) {
	payload, err := rt.service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeRawJSON(w, payload)
}

// getTranslated builds the handler for one translated artifact kind. The
// language comes from the "language" query parameter, falling back to the
// configured default.
func (rt *Routes) getTranslated(artifact string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		language := r.URL.Query().Get("language")
		if language == "" {
			language = rt.defaultLanguage
		}
		if language == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "language query parameter is required",
			})
			return
		}

		payload, err := rt.service.Translation(r.Context(), artifact, language)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeRawJSON(w, payload)
	}
}

// writeServiceError maps service errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotSynced):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "no war snapshot available yet",
		})
	case errors.Is(err, service.ErrLanguageNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "language not available in the current snapshot",
		})
	default:
		slog.Error("Snapshot service request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
		})
	}
}

// writeJSON encodes v as the JSON response body
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeRawJSON writes an already-encoded JSON payload as the response body
func writeRawJSON(w http.ResponseWriter, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
