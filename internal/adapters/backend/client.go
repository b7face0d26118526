// Package backend talks to the OctoFit REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"octofit/internal/adapters/http/perf"
	"octofit/internal/domain/user"
	"octofit/internal/observability"
)

// Collection resources served under /api/.
const (
	ResourceUsers       = "users"
	ResourceTeams       = "teams"
	ResourceActivities  = "activities"
	ResourceLeaderboard = "leaderboard"
	ResourceWorkouts    = "workouts"
)

// DefaultSlowUpstreamMs is the default threshold for slow backend call warnings.
const DefaultSlowUpstreamMs = 300

// Client performs backend calls and records their timing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	collector  *perf.Collector
	slowMs     float64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCollector records every call into the perf ring buffer.
func WithCollector(col *perf.Collector) Option {
	return func(c *Client) { c.collector = col }
}

// WithSlowThreshold sets the slow-call warning threshold in milliseconds.
func WithSlowThreshold(ms int) Option {
	return func(c *Client) {
		if ms > 0 {
			c.slowMs = float64(ms)
		}
	}
}

// NewClient creates a client for the API rooted at baseURL (e.g. "http://localhost:8000").
// Calls carry no client-side timeout; they end when the caller's context does.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		slowMs:     DefaultSlowUpstreamMs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the collection URL for resource, e.g. ".../api/teams/".
func (c *Client) Endpoint(resource string) string {
	return c.baseURL + "/api/" + resource + "/"
}

// UserURL returns the detail URL of one user.
func (c *Client) UserURL(id string) string {
	return c.Endpoint(ResourceUsers) + url.PathEscape(id) + "/"
}

// Get reads url and returns the body of a 2xx response.
// Non-2xx responses return *HTTPError with OpRead; transport failures are returned as-is.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	body, status, err := c.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &HTTPError{Op: OpRead, Status: status}
	}
	return body, nil
}

// UpdateProfile PATCHes /api/users/{id}/.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update user.ProfileUpdate) error {
	return c.write(ctx, http.MethodPatch, c.UserURL(userID), update, OpSave)
}

// AssignTeam POSTs /api/users/{id}/assign_team/.
func (c *Client) AssignTeam(ctx context.Context, userID string, assignment user.TeamAssignment) error {
	return c.write(ctx, http.MethodPost, c.UserURL(userID)+"assign_team/", assignment, OpAssignTeam)
}

func (c *Client) write(ctx context.Context, method, rawURL string, payload any, op Op) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", op, err)
	}
	_, status, err := c.do(ctx, method, rawURL, b)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &HTTPError{Op: op, Status: status}
	}
	return nil
}

// do issues one request and returns the response body and status.
// Every call is logged, counted and recorded regardless of outcome.
func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := observability.RequestIDFrom(ctx)
	if reqID != "" {
		req.Header.Set(observability.RequestIDHeader, reqID)
	}

	start := time.Now()
	status := 0
	var respBody []byte
	resp, err := c.httpClient.Do(req)
	if err == nil {
		status = resp.StatusCode
		respBody, err = io.ReadAll(resp.Body)
		resp.Body.Close()
	}
	c.observe(method, rawURL, reqID, status, start, err)
	if err != nil {
		return nil, status, err
	}
	return respBody, status, nil
}

func (c *Client) observe(method, rawURL, reqID string, status int, start time.Time, err error) {
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000.0
	resource := resourceOf(rawURL)

	observability.RecordUpstream(resource, method, status, elapsed)
	c.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       method + " " + resource,
		StatusCode: status,
		DurationMs: durationMs,
		Timestamp:  start,
	})

	attrs := []any{
		"request_id", reqID,
		"method", method,
		"url", rawURL,
		"status", status,
		"duration_ms", durationMs,
	}
	switch {
	case err != nil:
		slog.Warn("upstream_error", append(attrs, "error", err.Error())...)
	case durationMs >= c.slowMs:
		slog.Warn("slow_upstream", attrs...)
	default:
		slog.Debug("upstream_request", attrs...)
	}
}

// resourceOf extracts the collection name from an /api/<resource>/... URL.
func resourceOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "api" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return "unknown"
}
