package projections

import (
	"context"
	"log/slog"

	"octofit/internal/adapters/backend"
	"octofit/internal/application/fetch"
	"octofit/internal/domain/leaderboard"
)

// LeaderboardRow is one rendered leaderboard position.
type LeaderboardRow struct {
	Rank      int
	Key       string
	BadgeBG   string
	BadgeText string
	User      string
	Team      string
	Calories  string
	Score     string
	BarWidth  float64
}

// GetLeaderboardResult carries the query result.
type GetLeaderboardResult struct {
	View ListView
	Rows []LeaderboardRow
}

// QueryGetLeaderboard loads /api/leaderboard/ and ranks entries by position.
// INVARIANT: Rank is the 1-based array position; entries are never re-sorted
func QueryGetLeaderboard(ctx context.Context, query ViewQuery, deps ViewDeps) GetLeaderboardResult {
	l := fetch.New(deps.Getter, backend.Collection[leaderboard.Entry])
	s := load(ctx, l, deps.Endpoints.Endpoint(backend.ResourceLeaderboard), query.Wait)

	if !leaderboard.IsRankedByScore(s.Items) {
		slog.Warn("leaderboard_unsorted", "url", s.URL, "entries", len(s.Items))
	}

	rows := make([]LeaderboardRow, 0, len(s.Items))
	for i, e := range s.Items {
		bg, fg := leaderboard.BadgeColors(i)
		rows = append(rows, LeaderboardRow{
			Rank:      leaderboard.Rank(i),
			Key:       e.Key(i),
			BadgeBG:   bg,
			BadgeText: fg,
			User:      e.User,
			Team:      e.TeamLabel(),
			Calories:  e.CaloriesLabel(),
			Score:     e.ScoreLabel(),
			BarWidth:  e.BarWidth(),
		})
	}
	return GetLeaderboardResult{
		View: newListView("Leaderboard", "🏆", "entry", "entries", s),
		Rows: rows,
	}
}
