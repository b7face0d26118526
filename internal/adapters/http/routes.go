package web

import (
	"io/fs"
	"net/http"

	"octofit/internal/observability"
)

// navItem is one entry of the navbar and the home page.
type navItem struct {
	Path  string
	Label string
	Icon  string
}

// navItems lists the five views in navbar order.
var navItems = []navItem{
	{Path: "/users", Label: "Users", Icon: "👤"},
	{Path: "/activities", Label: "Activities", Icon: "🏃"},
	{Path: "/teams", Label: "Teams", Icon: "👥"},
	{Path: "/leaderboard", Label: "Leaderboard", Icon: "🏆"},
	{Path: "/workouts", Label: "Workouts", Icon: "💪"},
}

func (a *app) registerRoutes(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", a.handleHome)
	mux.HandleFunc("GET /users", a.handleUsers)
	mux.HandleFunc("GET /users/{id}/edit", a.handleEditUser)
	mux.HandleFunc("POST /users/{id}/edit", a.handleSaveUser)
	mux.HandleFunc("GET /activities", a.handleActivities)
	mux.HandleFunc("GET /teams", a.handleTeams)
	mux.HandleFunc("GET /leaderboard", a.handleLeaderboard)
	mux.HandleFunc("GET /workouts", a.handleWorkouts)

	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /metrics", observability.Handler())
	mux.HandleFunc("GET /debug/perf", a.handlePerf)
}
