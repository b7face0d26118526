package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"octofit/internal/adapters/backend"
	"octofit/internal/adapters/http/perf"
	"octofit/internal/config"
)

type backendCall struct {
	Key  string // "PATCH /api/users/1/"
	Body string
}

// fakeBackend serves canned responses keyed by "METHOD /path".
type fakeBackend struct {
	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	gate     chan struct{}
	calls    []backendCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{bodies: map[string]string{}, statuses: map[string]int{}}
}

// ServeHTTP records the call and replies with the seeded status and body.
// PRE: the key was seeded, otherwise the reply is 404
// POST: the call is appended to calls
func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls = append(f.calls, backendCall{Key: key, Body: string(body)})
	gate := f.gate
	resp, hasBody := f.bodies[key]
	status, hasStatus := f.statuses[key]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	switch {
	case hasStatus:
		w.WriteHeader(status)
	case !hasBody:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func (f *fakeBackend) Calls() []backendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backendCall{}, f.calls...)
}

func (f *fakeBackend) Reset() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

// newTestServer returns the dashboard router backed by fb, without middleware.
func newTestServer(t *testing.T, fb *fakeBackend, views config.ViewsConfig) http.Handler {
	t.Helper()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	collector := perf.NewCollector(100)
	client := backend.NewClient(srv.URL, backend.WithCollector(collector))
	a, err := newApp(client, views, collector)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	a.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	mux := http.NewServeMux()
	a.registerRoutes(mux)
	return mux
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestGetHome_ShellAndCards(t *testing.T) {
	h := newTestServer(t, newFakeBackend(), config.ViewsConfig{})

	rr := get(t, h, "/")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, item := range navItems {
		assertContains(t, body, `href="`+item.Path+`"`, item.Label)
	}
	assertContains(t, body, "View leaderboard data", "2026 OctoFit Tracker", "Stay fit, stay motivated!")
}

func TestGetUnknownPath_NotFound(t *testing.T) {
	h := newTestServer(t, newFakeBackend(), config.ViewsConfig{})

	if rr := get(t, h, "/nope"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestNav_HighlightsActiveView(t *testing.T) {
	fb := newFakeBackend()
	fb.bodies["GET /api/teams/"] = `[]`
	h := newTestServer(t, fb, config.ViewsConfig{})

	body := get(t, h, "/teams").Body.String()

	assertContains(t, body, `class="nav-link active" href="/teams"`)
	if strings.Contains(body, `class="nav-link active" href="/users"`) {
		t.Error("only the current view should be highlighted")
	}
}

func TestGetStatic_ServesStylesheet(t *testing.T) {
	h := newTestServer(t, newFakeBackend(), config.ViewsConfig{})

	rr := get(t, h, "/static/octofit.css")

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), ".octofit-table") {
		t.Errorf("unexpected static response %d", rr.Code)
	}
}

func TestGetHealthz(t *testing.T) {
	h := newTestServer(t, newFakeBackend(), config.ViewsConfig{})

	rr := get(t, h, "/healthz")

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("unexpected healthz response %d %s", rr.Code, rr.Body.String())
	}
}

func TestGetPerf_JSONAndHTML(t *testing.T) {
	fb := newFakeBackend()
	fb.bodies["GET /api/workouts/"] = `[]`
	h := newTestServer(t, fb, config.ViewsConfig{})
	get(t, h, "/workouts")

	req := httptest.NewRequest(http.MethodGet, "/debug/perf", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "GET workouts") {
		t.Errorf("unexpected JSON snapshot %d %s", rr.Code, rr.Body.String())
	}

	html := get(t, h, "/debug/perf")
	assertContains(t, html.Body.String(), "Slowest backend calls", "GET workouts")
}

func TestGetMetrics(t *testing.T) {
	fb := newFakeBackend()
	fb.bodies["GET /api/teams/"] = `[]`
	h := newTestServer(t, fb, config.ViewsConfig{})
	get(t, h, "/teams")

	rr := get(t, h, "/metrics")

	assertContains(t, rr.Body.String(), "octofit_dashboard_upstream_requests_total", "octofit_dashboard_views_renders_total")
}
