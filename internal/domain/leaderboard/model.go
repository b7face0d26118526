package leaderboard

import (
	"strconv"

	"octofit/internal/domain/record"
)

// MedalColors are the rank badge backgrounds for the top three positions.
var MedalColors = []string{"#FFD700", "#C0C0C0", "#CD7F32"}

// Neutral badge colours for ranks below the podium.
const (
	NeutralBadge   = "#e9ecef"
	NeutralText    = "#555"
	PodiumText     = "#1a1a2e"
	MaxBarWidthPct = 100
)

// Entry is one leaderboard row as received from the backend.
type Entry struct {
	MongoID       record.ID `json:"_id"`
	ID            record.ID `json:"id"`
	User          string    `json:"user"`
	Team          *string   `json:"team"`
	TotalCalories *float64  `json:"total_calories"`
	Score         float64   `json:"score"`
}

// Key returns the render identity; the array position is the last resort.
func (e Entry) Key(index int) string {
	return record.Key(e.MongoID, e.ID, strconv.Itoa(index))
}

// TeamLabel returns the team name or "N/A".
func (e Entry) TeamLabel() string {
	if e.Team == nil || *e.Team == "" {
		return "N/A"
	}
	return *e.Team
}

// CaloriesLabel renders total calories, treating a missing value as 0.
func (e Entry) CaloriesLabel() string {
	cal := 0.0
	if e.TotalCalories != nil {
		cal = *e.TotalCalories
	}
	return record.Number(cal) + " kcal"
}

// ScoreLabel renders the score without trailing zeros.
func (e Entry) ScoreLabel() string {
	return record.Number(e.Score)
}

// BarWidth is the score bar width in percent.
// INVARIANT: 0 <= width <= 100; scores above 100 render a full bar
func (e Entry) BarWidth() float64 {
	switch {
	case e.Score > MaxBarWidthPct:
		return MaxBarWidthPct
	case e.Score < 0:
		return 0
	}
	return e.Score
}

// Rank is the 1-based position in the received array.
func Rank(index int) int {
	return index + 1
}

// BadgeColors returns the background and text colour of the rank badge.
func BadgeColors(index int) (background, text string) {
	if index >= 0 && index < len(MedalColors) {
		return MedalColors[index], PodiumText
	}
	return NeutralBadge, NeutralText
}

// IsRankedByScore reports whether scores are non-increasing in received order.
// Ranks are positional, so an unsorted response produces misleading ranks.
func IsRankedByScore(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			return false
		}
	}
	return true
}
