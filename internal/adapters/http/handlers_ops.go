package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// perfWindow is how far back /debug/perf aggregates.
const perfWindow = 15 * time.Minute

// perfTopN bounds the slowest-path tables.
const perfTopN = 10

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePerf shows request and upstream timings. Browsers get HTML, everything else JSON.
func (a *app) handlePerf(w http.ResponseWriter, r *http.Request) {
	snap := a.collector.Snapshot(a.now().Add(-perfWindow), perfTopN)
	if isHTMLRequest(r) {
		a.render(w, r, http.StatusOK, "perf", "Performance", false, snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}
