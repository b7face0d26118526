package projections

import (
	"context"

	"octofit/internal/adapters/backend"
	"octofit/internal/application/fetch"
	"octofit/internal/domain/activity"
)

// ActivityRow is one rendered activity.
type ActivityRow struct {
	Index    int
	Key      string
	User     string
	Type     string
	Duration string
	Date     string
}

// GetActivitiesResult carries the query result.
type GetActivitiesResult struct {
	View ListView
	Rows []ActivityRow
}

// QueryGetActivities loads /api/activities/ and formats each row.
// PRE: deps.Getter and deps.Endpoints are set
// POST: Rows follow received order; View.Err is set on failure and the page still renders
func QueryGetActivities(ctx context.Context, query ViewQuery, deps ViewDeps) GetActivitiesResult {
	l := fetch.New(deps.Getter, backend.Collection[activity.Activity])
	s := load(ctx, l, deps.Endpoints.Endpoint(backend.ResourceActivities), query.Wait)

	rows := make([]ActivityRow, 0, len(s.Items))
	for i, a := range s.Items {
		rows = append(rows, ActivityRow{
			Index:    i + 1,
			Key:      a.Key(),
			User:     a.User,
			Type:     a.ActivityType,
			Duration: a.DurationLabel(),
			Date:     a.DateLabel(),
		})
	}
	return GetActivitiesResult{
		View: newListView("Activities", "🏃", "activity", "activities", s),
		Rows: rows,
	}
}
