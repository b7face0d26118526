package web

import (
	"log/slog"
	"net/http"

	"octofit/internal/application/orchestrators"
	"octofit/internal/application/projections"
	"octofit/internal/domain/record"
	"octofit/internal/domain/user"
	"octofit/internal/domain/useredit"
	"octofit/internal/observability"
)

// Form field names of the edit form.
const (
	fieldUsername         = "username"
	fieldEmail            = "email"
	fieldPassword         = "password"
	fieldTeamID           = "team_id"
	fieldOriginalUsername = "original_username"
	fieldOriginalTeamID   = "original_team_id"
)

func (a *app) handleUsers(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetUsers(r.Context(), projections.GetUsersQuery{ViewQuery: a.viewQuery()}, a.views)
	a.renderView(w, r, "users", res.View, res)
}

// handleEditUser renders the list with the edit form open for one user.
func (a *app) handleEditUser(w http.ResponseWriter, r *http.Request) {
	query := projections.GetUsersQuery{ViewQuery: a.viewQuery(), EditID: r.PathValue("id")}
	res := projections.QueryGetUsers(r.Context(), query, a.views)
	if res.EditMissing {
		http.NotFound(w, r)
		return
	}
	a.renderView(w, r, "users", res.View, res)
}

// handleSaveUser runs the two backend writes and redirects to the fresh list.
// The baseline user comes from hidden fields so no read precedes the writes.
// On failure the list is re-rendered with the form open and the error shown.
func (a *app) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	baseline := user.User{
		ID:       record.StringID(id),
		Username: r.PostFormValue(fieldOriginalUsername),
	}
	if teamID := r.PostFormValue(fieldOriginalTeamID); teamID != "" {
		baseline.Team = &user.TeamRef{ID: record.StringID(teamID)}
	}
	session := useredit.Resume(baseline, useredit.Form{
		Username: r.PostFormValue(fieldUsername),
		Email:    r.PostFormValue(fieldEmail),
		Password: r.PostFormValue(fieldPassword),
		TeamID:   r.PostFormValue(fieldTeamID),
	})

	input := orchestrators.SaveUserInput{Session: session, SkipUnchangedTeam: a.skipUnchangedTeam}
	session, err := orchestrators.ExecuteSaveUser(r.Context(), input, orchestrators.SaveUserDeps{Writer: a.writer})
	if err == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	slog.Info("user_event", "event", "save_rejected", "user_id", id,
		"request_id", observability.RequestIDFrom(r.Context()), "error", err.Error())
	query := projections.GetUsersQuery{ViewQuery: a.viewQuery(), Session: &session}
	res := projections.QueryGetUsers(r.Context(), query, a.views)
	a.renderView(w, r, "users", res.View, res)
}
