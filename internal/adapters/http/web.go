package web

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"octofit/internal/adapters/backend"
	"octofit/internal/adapters/http/middleware"
	"octofit/internal/adapters/http/perf"
	"octofit/internal/application/orchestrators"
	"octofit/internal/application/projections"
	"octofit/internal/config"
)

// sweepInterval is how often idle rate-limit buckets are dropped.
const sweepInterval = time.Minute

// app holds handler dependencies.
type app struct {
	views             projections.ViewDeps
	writer            orchestrators.UserWriter
	wait              time.Duration
	skipUnchangedTeam bool
	collector         *perf.Collector
	pages             map[string]*template.Template
	now               func() time.Time
}

func newApp(client *backend.Client, views config.ViewsConfig, collector *perf.Collector) (*app, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	if collector == nil {
		collector = perf.NewCollector(perf.DefaultRingSize)
	}
	return &app{
		views:             projections.ViewDeps{Getter: client, Endpoints: client},
		writer:            client,
		wait:              views.RenderWait,
		skipUnchangedTeam: views.SkipUnchangedTeam,
		collector:         collector,
		pages:             pages,
		now:               time.Now,
	}, nil
}

// NewMux wires HTTP handlers for the dashboard.
// ctx bounds background housekeeping such as rate-limit sweeping.
func NewMux(ctx context.Context, cfg *config.Config, client *backend.Client, collector *perf.Collector) (http.Handler, error) {
	a, err := newApp(client, cfg.Views, collector)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	csrfKey, generated, err := cfg.CSRFKey()
	if err != nil {
		return nil, err
	}
	if generated {
		log.Println("WARNING: using random CSRF key (forms won't survive restart). Set OCTOFIT_CSRF_KEY for production.")
	}

	limiter := middleware.NewRateLimiter(cfg.Security.RateLimit, time.Second)
	go limiter.RunSweeper(ctx, sweepInterval)

	// Outermost first: RequestID -> Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, middleware.CSRFOptions{
			Secure:         cfg.IsProduction(),
			TrustedOrigins: []string{"localhost:8080", "127.0.0.1:8080"},
		}),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, cfg.Perf.SlowRequestMs),
		middleware.RequestID,
	), nil
}
