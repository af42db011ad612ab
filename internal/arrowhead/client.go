// Package arrowhead implements the client for the remote galactic war API.
package arrowhead

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/warfront-labs/warsync/internal/httpclient"
)

// Client is the narrow interface the sync core consumes to reach the war API.
// All errors are treated uniformly as transient by the callers.
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/warfront-labs/warsync/internal/arrowhead Client
type Client interface {
	// CurrentWarID resolves the identifier of the currently active war season
	CurrentWarID(ctx context.Context) (int64, error)

	// WarInfo fetches the language-independent war info for a season
	WarInfo(ctx context.Context, warID int64) (*WarInfo, error)

	// Summary fetches the galaxy-wide statistics summary for a season
	Summary(ctx context.Context, warID int64) (*WarSummary, error)

	// Status fetches the war status payload translated into the given language
	Status(ctx context.Context, warID int64, language string) ([]byte, error)

	// NewsFeed fetches the news feed payload translated into the given language
	NewsFeed(ctx context.Context, warID int64, language string) ([]byte, error)

	// Assignments fetches the assignment payload translated into the given language
	Assignments(ctx context.Context, warID int64, language string) ([]byte, error)
}

// apiClient is the default Client implementation backed by the shared HTTP client
type apiClient struct {
	endpoint string
	http     httpclient.Client
}

// Option configures the API client
type Option func(*apiClient)

// WithHTTPClient overrides the underlying HTTP client, primarily for testing
func WithHTTPClient(c httpclient.Client) Option {
	return func(a *apiClient) {
		a.http = c
	}
}

// NewClient creates a Client for the API rooted at endpoint
// (e.g. "https://api.live.prod.thehelldiversgame.com/api").
func NewClient(endpoint string, timeout time.Duration, opts ...Option) (Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	c := &apiClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpclient.NewDefaultClient(timeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CurrentWarID resolves the identifier of the currently active war season
func (c *apiClient) CurrentWarID(ctx context.Context) (int64, error) {
	body, err := c.http.Get(ctx, c.endpoint+"/WarSeason/current/WarID", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch current war id: %w", err)
	}

	var war WarID
	if err := json.Unmarshal(body, &war); err != nil {
		return 0, fmt.Errorf("failed to decode war id response: %w", err)
	}
	return war.ID, nil
}

// WarInfo fetches the language-independent war info for a season
func (c *apiClient) WarInfo(ctx context.Context, warID int64) (*WarInfo, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf("%s/WarSeason/%d/WarInfo", c.endpoint, warID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch war info: %w", err)
	}

	var info WarInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode war info response: %w", err)
	}
	info.Raw = body
	return &info, nil
}

// Summary fetches the galaxy-wide statistics summary for a season
func (c *apiClient) Summary(ctx context.Context, warID int64) (*WarSummary, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf("%s/Stats/War/%d/Summary", c.endpoint, warID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch war summary: %w", err)
	}

	var summary WarSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode war summary response: %w", err)
	}
	summary.Raw = body
	return &summary, nil
}

// Status fetches the war status payload translated into the given language
func (c *apiClient) Status(ctx context.Context, warID int64, language string) ([]byte, error) {
	return c.translated(ctx, fmt.Sprintf("%s/WarSeason/%d/Status", c.endpoint, warID), language)
}

// NewsFeed fetches the news feed payload translated into the given language
func (c *apiClient) NewsFeed(ctx context.Context, warID int64, language string) ([]byte, error) {
	return c.translated(ctx, fmt.Sprintf("%s/NewsFeed/%d", c.endpoint, warID), language)
}

// Assignments fetches the assignment payload translated into the given language
func (c *apiClient) Assignments(ctx context.Context, warID int64, language string) ([]byte, error) {
	return c.translated(ctx, fmt.Sprintf("%s/v2/Assignment/War/%d", c.endpoint, warID), language)
}

// translated performs a GET with the Accept-Language header set and verifies
// the payload is well-formed JSON before handing it back untouched.
func (c *apiClient) translated(ctx context.Context, url, language string) ([]byte, error) {
	body, err := c.http.Get(ctx, url, map[string]string{"Accept-Language": language})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s (language %s): %w", url, language, err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("malformed JSON payload from %s (language %s)", url, language)
	}
	return body, nil
}
