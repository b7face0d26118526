// Package observability exposes Prometheus metrics for the dashboard.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "octofit_dashboard"

var (
	upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Backend API requests by resource, method and status code (\"error\" for transport failures).",
	}, []string{"resource", "method", "code"})
	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Backend API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "method"})
	pageRenders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "views",
		Name:      "renders_total",
		Help:      "Rendered view pages by view and outcome (ok, error, loading).",
	}, []string{"view", "outcome"})
	userSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "users",
		Name:      "saves_total",
		Help:      "Edit-user save attempts by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(upstreamRequests, upstreamDuration, pageRenders, userSaves)
}

// Render outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeLoading = "loading"
)

// Save outcomes.
const (
	SaveOK            = "saved"
	SaveProfileFailed = "profile_failed"
	SaveTeamFailed    = "team_failed"
)

// RecordUpstream counts one backend call; status 0 means the transport failed.
func RecordUpstream(resource, method string, status int, d time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(resource, method, code).Inc()
	upstreamDuration.WithLabelValues(resource, method).Observe(d.Seconds())
}

// RecordPageRender counts one rendered view.
func RecordPageRender(view, outcome string) {
	pageRenders.WithLabelValues(view, outcome).Inc()
}

// RecordUserSave counts one save attempt.
func RecordUserSave(outcome string) {
	userSaves.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
