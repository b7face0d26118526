package team

import (
	"encoding/json"
	"strings"

	"octofit/internal/domain/record"
)

// Team is a backend team record.
// Members is kept raw because the backend sometimes serialises the list as a
// single string such as "['alice', 'bob']".
type Team struct {
	MongoID record.ID       `json:"_id"`
	ID      record.ID       `json:"id"`
	Name    string          `json:"name"`
	Members json.RawMessage `json:"members"`
}

// Key returns the render identity of the team.
func (t Team) Key() string {
	return record.Key(t.MongoID, t.ID, t.Name)
}

// OptionValue is the id submitted by the team selector.
func (t Team) OptionValue() string {
	return record.Key(t.ID, t.MongoID, "")
}

// MemberList returns the parsed member identifiers.
func (t Team) MemberList() []string {
	return ParseMembers(t.Members)
}

// ParseMembers converts the members field into a list of plain strings.
// PRE: raw is the undecoded JSON value (may be empty)
// POST: arrays are returned element for element; strings go through ParseMemberString;
// any other value yields an empty list
func ParseMembers(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return []string{}
	}
	switch m := v.(type) {
	case []any:
		out := make([]string, 0, len(m))
		for _, e := range m {
			out = append(out, record.Text(e))
		}
		return out
	case string:
		return ParseMemberString(m)
	}
	return []string{}
}

// ParseMemberString handles a printed list literal such as "['a', \"b\"]".
// It strips one bracket at each end, splits on commas, trims each piece and one
// quote at each end of it, and drops empty results. Escaped commas and nested
// lists are not supported.
func ParseMemberString(s string) []string {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		piece = trimOneQuote(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func trimOneQuote(s string) string {
	if strings.HasPrefix(s, "'") || strings.HasPrefix(s, `"`) {
		s = s[1:]
	}
	if strings.HasSuffix(s, "'") || strings.HasSuffix(s, `"`) {
		s = s[:len(s)-1]
	}
	return s
}
