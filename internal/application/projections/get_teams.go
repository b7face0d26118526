package projections

import (
	"context"

	"octofit/internal/adapters/backend"
	"octofit/internal/application/fetch"
	"octofit/internal/domain/team"
)

// TeamRow is one rendered team.
type TeamRow struct {
	Index   int
	Key     string
	Name    string
	Members []string
}

// MemberCount is the number of parsed members.
func (r TeamRow) MemberCount() int {
	return len(r.Members)
}

// GetTeamsResult carries the query result.
type GetTeamsResult struct {
	View ListView
	Rows []TeamRow
}

// QueryGetTeams loads /api/teams/ and parses each member list.
// POST: members are rendered from team.ParseMembers whatever shape the backend sent
func QueryGetTeams(ctx context.Context, query ViewQuery, deps ViewDeps) GetTeamsResult {
	l := fetch.New(deps.Getter, backend.Collection[team.Team])
	s := load(ctx, l, deps.Endpoints.Endpoint(backend.ResourceTeams), query.Wait)

	rows := make([]TeamRow, 0, len(s.Items))
	for i, t := range s.Items {
		rows = append(rows, TeamRow{
			Index:   i + 1,
			Key:     t.Key(),
			Name:    t.Name,
			Members: t.MemberList(),
		})
	}
	return GetTeamsResult{
		View: newListView("Teams", "👥", "team", "teams", s),
		Rows: rows,
	}
}
