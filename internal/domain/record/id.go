package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrInvalidID is returned when an identifier is neither a JSON string nor a number.
var ErrInvalidID = errors.New("identifier must be a string or a number")

// ID is a backend identifier. The backend serialises primary keys as strings,
// but numeric ids are accepted too and re-encoded in the form they arrived in.
type ID struct {
	value   string
	numeric bool
}

// StringID wraps a string identifier (e.g. a form value).
func StringID(s string) ID {
	return ID{value: s}
}

// NumericID wraps an integer identifier.
func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

// String returns the identifier as text; the zero ID is "".
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON encodes the zero ID as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts null, strings and numbers.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*id = ID{value: n.String(), numeric: true}
		return nil
	}
	return ErrInvalidID
}

// Key picks the identity used for a rendered row: the database-style id,
// then the alternate id, then the fallback value.
func Key(primary, alternate ID, fallback string) string {
	if !primary.IsZero() {
		return primary.String()
	}
	if !alternate.IsZero() {
		return alternate.String()
	}
	return fallback
}
