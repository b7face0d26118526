package projections

import (
	"context"
	"log/slog"
	"sync"

	"octofit/internal/adapters/backend"
	"octofit/internal/application/fetch"
	"octofit/internal/domain/team"
	"octofit/internal/domain/user"
	"octofit/internal/domain/useredit"
)

// GetUsersQuery carries query parameters.
// EditID opens the form for that user; Session replaces it when a save failed.
type GetUsersQuery struct {
	ViewQuery
	EditID  string
	Session *useredit.Session
}

// UserRow is one rendered user.
type UserRow struct {
	Index       int
	Key         string
	EditID      string
	DisplayName string
	Username    string
	Email       string
	TeamName    string
}

// TeamOption is one entry of the team selector.
type TeamOption struct {
	Value string
	Name  string
}

// GetUsersResult carries the query result.
type GetUsersResult struct {
	View  ListView
	Rows  []UserRow
	Teams []TeamOption
	Edit  useredit.Session
	// EditMissing is set when EditID named a user that is not in the collection.
	EditMissing bool
}

// QueryGetUsers loads users and teams concurrently and prepares the edit form.
// PRE: deps.Getter and deps.Endpoints are set
// POST: a teams failure leaves Teams empty and is not surfaced
// INVARIANT: the password field of an opened form is blank
func QueryGetUsers(ctx context.Context, query GetUsersQuery, deps ViewDeps) GetUsersResult {
	users := fetch.New(deps.Getter, backend.Collection[user.User])
	teams := fetch.New(deps.Getter, backend.Collection[team.Team])

	var (
		wg        sync.WaitGroup
		userState fetch.State[user.User]
		teamState fetch.State[team.Team]
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		userState = load(ctx, users, deps.Endpoints.Endpoint(backend.ResourceUsers), query.Wait)
	}()
	go func() {
		defer wg.Done()
		teamState = load(ctx, teams, deps.Endpoints.Endpoint(backend.ResourceTeams), query.Wait)
	}()
	wg.Wait()

	if teamState.Err != "" {
		slog.Warn("team_options_unavailable", "url", teamState.URL, "error", teamState.Err)
	}

	result := GetUsersResult{
		View:  newListView("Users", "👤", "user", "users", userState),
		Rows:  make([]UserRow, 0, len(userState.Items)),
		Teams: make([]TeamOption, 0, len(teamState.Items)),
	}
	for i, u := range userState.Items {
		result.Rows = append(result.Rows, UserRow{
			Index:       i + 1,
			Key:         u.Key(),
			EditID:      u.ResourceID(),
			DisplayName: u.DisplayName(),
			Username:    u.Username,
			Email:       u.Email,
			TeamName:    u.TeamName(),
		})
	}
	for _, t := range teamState.Items {
		result.Teams = append(result.Teams, TeamOption{Value: t.OptionValue(), Name: t.Name})
	}

	switch {
	case query.Session != nil:
		result.Edit = *query.Session
	case query.EditID != "":
		u, ok := FindUser(userState.Items, query.EditID)
		if !ok {
			result.EditMissing = !userState.Loading && userState.Err == ""
			break
		}
		result.Edit.Open(u)
	}
	return result
}

// FindUser returns the user whose write id is id.
func FindUser(users []user.User, id string) (user.User, bool) {
	for _, u := range users {
		if u.ResourceID() == id {
			return u, true
		}
	}
	return user.User{}, false
}
