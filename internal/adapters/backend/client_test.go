package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octofit/internal/adapters/http/perf"
	"octofit/internal/domain/record"
	"octofit/internal/domain/team"
	"octofit/internal/domain/user"
	"octofit/internal/observability"
)

type capturedRequest struct {
	Method    string
	Path      string
	Body      string
	RequestID string
	CType     string
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var seen []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, capturedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Body:      string(b),
			RequestID: r.Header.Get(observability.RequestIDHeader),
			CType:     r.Header.Get("Content-Type"),
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), seen...)
	}
}

func TestClient_Endpoints(t *testing.T) {
	c := NewClient("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
	assert.Equal(t, "http://localhost:8000/api/activities/", c.Endpoint(ResourceActivities))
	assert.Equal(t, "http://localhost:8000/api/users/64f0/", c.UserURL("64f0"))
}

func TestClient_GetSuccessRecordsTiming(t *testing.T) {
	srv, seen := newBackend(t, http.StatusOK, `[{"name":"Team DC"}]`)
	col := perf.NewCollector(16)
	c := NewClient(srv.URL, WithCollector(col))

	ctx := observability.WithRequestID(context.Background(), "req-1")
	body, err := c.Get(ctx, c.Endpoint(ResourceTeams))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Team DC"}]`, string(body))

	reqs := seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/teams/", reqs[0].Path)
	assert.Equal(t, "req-1", reqs[0].RequestID)

	snap := col.Snapshot(time.Now().Add(-time.Minute), 5)
	require.Len(t, snap.SlowestUpstream, 1)
	assert.Equal(t, "GET teams", snap.SlowestUpstream[0].Path)
}

func TestClient_GetNonSuccessStatus(t *testing.T) {
	srv, _ := newBackend(t, http.StatusInternalServerError, `{"detail":"boom"}`)
	c := NewClient(srv.URL)

	_, err := c.Get(context.Background(), c.Endpoint(ResourceWorkouts))
	require.Error(t, err)
	assert.Equal(t, "HTTP error 500", err.Error())
	assert.Equal(t, 500, StatusOf(err))
}

func TestClient_GetTransportFailure(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.Get(context.Background(), c.Endpoint(ResourceUsers))
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
	var he *HTTPError
	assert.False(t, errors.As(err, &he))
}

func TestClient_UpdateProfileAndAssignTeam(t *testing.T) {
	srv, seen := newBackend(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.UpdateProfile(ctx, "1", user.ProfileUpdate{Username: "jane_doe", Email: "jane@x.com"}))
	require.NoError(t, c.AssignTeam(ctx, "1", user.TeamAssignment{}))

	reqs := seen()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPatch, reqs[0].Method)
	assert.Equal(t, "/api/users/1/", reqs[0].Path)
	assert.JSONEq(t, `{"username":"jane_doe","email":"jane@x.com"}`, reqs[0].Body)
	assert.Equal(t, "application/json", reqs[0].CType)

	assert.Equal(t, http.MethodPost, reqs[1].Method)
	assert.Equal(t, "/api/users/1/assign_team/", reqs[1].Path)
	assert.JSONEq(t, `{"team_id":null}`, reqs[1].Body)
}

func TestClient_WriteErrorsCarryOperation(t *testing.T) {
	srv, _ := newBackend(t, http.StatusBadRequest, `{}`)
	c := NewClient(srv.URL)
	ctx := context.Background()

	err := c.UpdateProfile(ctx, "1", user.ProfileUpdate{})
	require.Error(t, err)
	assert.Equal(t, "Save failed: 400", err.Error())

	err = c.AssignTeam(ctx, "1", user.TeamAssignment{TeamID: record.StringID("9")})
	require.Error(t, err)
	assert.Equal(t, "Team update failed: 400", err.Error())
}

func TestCollection_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"name":"a"},{"name":"b"}]`, 2},
		{"pagination envelope", `{"count":2,"next":null,"results":[{"name":"a"},{"name":"b"}]}`, 2},
		{"object without results", `{"detail":"nothing"}`, 0},
		{"results not an array", `{"results":"oops"}`, 0},
		{"null root", `null`, 0},
		{"string root", `"hello"`, 0},
		{"empty array", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Collection[team.Team]([]byte(tt.body))
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.want)
		})
	}
}

// TestCollection_EnvelopeMatchesArray verifies a results envelope decodes identically to a bare array.
func TestCollection_EnvelopeMatchesArray(t *testing.T) {
	arr := `[{"id":"1","name":"Team Marvel","members":"['tony_stark']"}]`
	bare, err := Collection[team.Team]([]byte(arr))
	require.NoError(t, err)
	wrapped, err := Collection[team.Team]([]byte(`{"results":` + arr + `}`))
	require.NoError(t, err)

	a, _ := json.Marshal(bare)
	b, _ := json.Marshal(wrapped)
	assert.JSONEq(t, string(a), string(b))
}

func TestCollection_InvalidJSON(t *testing.T) {
	_, err := Collection[team.Team]([]byte(`<html>`))
	assert.Error(t, err)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "users", resourceOf("http://h/api/users/1/assign_team/"))
	assert.Equal(t, "leaderboard", resourceOf("https://x-8000.app.github.dev/api/leaderboard/"))
	assert.Equal(t, "unknown", resourceOf("http://h/healthz"))
}
