package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"octofit/internal/adapters/backend"
	web "octofit/internal/adapters/http"
	"octofit/internal/adapters/http/perf"
	"octofit/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	envFile := flag.String("env-file", config.DefaultEnvFile, "optional .env file merged into the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Performance instrumentation shared by the request timer and the backend client
	collector := perf.NewCollector(perf.DefaultRingSize)
	client := backend.NewClient(cfg.API.BaseURL,
		backend.WithCollector(collector),
		backend.WithSlowThreshold(cfg.Perf.SlowUpstreamMs),
	)

	mux, err := web.NewMux(ctx, cfg, client, collector)
	if err != nil {
		log.Fatalf("failed to build handlers: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("OctoFit dashboard %s starting on %s (env=%s, api=%s)", version, cfg.Server.Addr, cfg.Server.Env, cfg.API.BaseURL)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}
	}
}
