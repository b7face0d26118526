package backend

import (
	"bytes"
	"encoding/json"
)

// Collection decodes a collection response. A JSON array root is used directly;
// an object root contributes its "results" array (pagination envelope); any
// other shape yields an empty collection without error.
// PRE: raw is a complete response body
// POST: returns a non-nil slice unless err != nil
func Collection[T any](raw []byte) ([]T, error) {
	var root json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}

	items := root
	switch firstByte(root) {
	case '[':
	case '{':
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(root, &envelope); err != nil {
			return nil, err
		}
		if firstByte(envelope.Results) != '[' {
			return []T{}, nil
		}
		items = envelope.Results
	default:
		return []T{}, nil
	}

	out := []T{}
	if err := json.Unmarshal(items, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
