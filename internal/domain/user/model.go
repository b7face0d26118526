package user

import (
	"regexp"
	"strings"

	"octofit/internal/domain/record"
)

// TeamRef is the team a user currently belongs to.
type TeamRef struct {
	ID   record.ID `json:"id"`
	Name string    `json:"name"`
}

// User is a backend user record.
// Password is accepted on the wire but never displayed or pre-filled.
type User struct {
	MongoID  record.ID `json:"_id"`
	ID       record.ID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Team     *TeamRef  `json:"team"`
}

// Key returns the render identity of the user.
func (u User) Key() string {
	return record.Key(u.MongoID, u.ID, u.Username)
}

// ResourceID is the id used in write URLs: "id" first, then "_id".
func (u User) ResourceID() string {
	return record.Key(u.ID, u.MongoID, "")
}

// DisplayName returns the username formatted for the Name column.
func (u User) DisplayName() string {
	return DisplayName(u.Username)
}

// TeamID returns the current team id, or "" when the user has no team.
func (u User) TeamID() string {
	if u.Team == nil {
		return ""
	}
	return u.Team.ID.String()
}

// TeamName returns the current team name, or "" when the user has no team.
func (u User) TeamName() string {
	if u.Team == nil {
		return ""
	}
	return u.Team.Name
}

var wordStart = regexp.MustCompile(`\b\w`)

// DisplayName replaces underscores with spaces and upper-cases the first
// letter of every word: "jane_doe" -> "Jane Doe".
func DisplayName(username string) string {
	spaced := strings.ReplaceAll(username, "_", " ")
	return wordStart.ReplaceAllStringFunc(spaced, strings.ToUpper)
}

// ProfileUpdate is the PATCH body for /api/users/{id}/.
// Password is omitted unless a new one was entered.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// TeamAssignment is the POST body for /api/users/{id}/assign_team/.
// A zero TeamID encodes as null, meaning "no team".
type TeamAssignment struct {
	TeamID record.ID `json:"team_id"`
}
