package record

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalStringAndNumber(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		marshal string
	}{
		{"string", `"64f0a1"`, "64f0a1", `"64f0a1"`},
		{"number", `5`, "5", `5`},
		{"null", `null`, "", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if id.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id.String())
			}
			out, err := json.Marshal(id)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.marshal {
				t.Errorf("expected re-encoding %s, got %s", tt.marshal, out)
			}
		})
	}
}

func TestID_RejectsObjects(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"$oid":"x"}`), &id); err == nil {
		t.Error("expected error for object identifier")
	}
}

func TestKey_Priority(t *testing.T) {
	if got := Key(StringID("a"), StringID("b"), "c"); got != "a" {
		t.Errorf("expected primary id, got %q", got)
	}
	if got := Key(ID{}, NumericID(7), "c"); got != "7" {
		t.Errorf("expected alternate id, got %q", got)
	}
	if got := Key(ID{}, ID{}, "tony_stark"); got != "tony_stark" {
		t.Errorf("expected fallback, got %q", got)
	}
}
