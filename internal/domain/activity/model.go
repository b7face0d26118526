package activity

import (
	"time"

	"octofit/internal/domain/record"
)

// DateLayout is the wire format of Activity.Date.
const DateLayout = "2006-01-02"

// DisplayDateLayout renders a medium date, e.g. "Feb 20, 2026".
const DisplayDateLayout = "Jan 2, 2006"

// Activity is a single logged workout session.
type Activity struct {
	MongoID      record.ID `json:"_id"`
	ID           record.ID `json:"id"`
	User         string    `json:"user"`
	ActivityType string    `json:"activity_type"`
	Duration     float64   `json:"duration"` // minutes
	Date         string    `json:"date"`
}

// Key returns the render identity of the activity.
func (a Activity) Key() string {
	return record.Key(a.MongoID, a.ID, a.User+"@"+a.Date)
}

// DurationLabel renders the duration with its unit: "30 min".
func (a Activity) DurationLabel() string {
	return record.Number(a.Duration) + " min"
}

// DateLabel renders the date as a medium date.
// INVARIANT: a plain calendar date is never shifted by the server's timezone
func (a Activity) DateLabel() string {
	return FormatDate(a.Date)
}

// FormatDate parses an ISO date (or RFC 3339 timestamp) and renders it as a
// medium date. Values that do not parse are returned unchanged.
func FormatDate(s string) string {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d.Format(DisplayDateLayout)
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format(DisplayDateLayout)
	}
	return s
}
