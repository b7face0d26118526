package web

import (
	"net/http"

	"octofit/internal/application/projections"
)

func (a *app) viewQuery() projections.ViewQuery {
	return projections.ViewQuery{Wait: a.wait}
}

func (a *app) handleHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "home", "OctoFit Tracker", false, navItems)
}

func (a *app) handleActivities(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetActivities(r.Context(), a.viewQuery(), a.views)
	a.renderView(w, r, "activities", res.View, res)
}

func (a *app) handleTeams(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetTeams(r.Context(), a.viewQuery(), a.views)
	a.renderView(w, r, "teams", res.View, res)
}

func (a *app) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetLeaderboard(r.Context(), a.viewQuery(), a.views)
	a.renderView(w, r, "leaderboard", res.View, res)
}

func (a *app) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetWorkouts(r.Context(), a.viewQuery(), a.views)
	a.renderView(w, r, "workouts", res.View, res)
}
