package workout

import (
	"encoding/json"

	"octofit/internal/domain/record"
)

// Workout is a suggested workout plan.
// Exercises is normally an array of names but is kept raw because the backend
// occasionally sends a bare value instead.
type Workout struct {
	MongoID     record.ID       `json:"_id"`
	ID          record.ID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Exercises   json.RawMessage `json:"exercises"`
}

// Key returns the render identity of the workout.
func (w Workout) Key() string {
	return record.Key(w.MongoID, w.ID, w.Name)
}

// ExerciseList returns one entry per exercise and true when the field is an array.
func (w Workout) ExerciseList() ([]string, bool) {
	v, ok := w.decode()
	if !ok {
		return nil, false
	}
	items, isArray := v.([]any)
	if !isArray {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, record.Text(it))
	}
	return out, true
}

// ExercisesText renders a non-array exercises value as-is ("rest day").
func (w Workout) ExercisesText() string {
	v, ok := w.decode()
	if !ok {
		return ""
	}
	return record.Text(v)
}

func (w Workout) decode() (any, bool) {
	if len(w.Exercises) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(w.Exercises, &v); err != nil {
		return nil, false
	}
	return v, true
}
