package record

import (
	"encoding/json"
	"strconv"
)

// Text renders a decoded JSON value the way a table cell shows it.
// Strings and numbers print as themselves; null and booleans print nothing;
// arrays and objects fall back to their JSON encoding.
func Text(v any) string {
	switch x := v.(type) {
	case nil, bool:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Number formats a numeric field without trailing zeros (30.0 -> "30").
func Number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
