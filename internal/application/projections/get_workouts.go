package projections

import (
	"context"

	"octofit/internal/adapters/backend"
	"octofit/internal/application/fetch"
	"octofit/internal/domain/workout"
)

// WorkoutRow is one rendered workout.
// When IsList is false, ExercisesText holds the raw value.
type WorkoutRow struct {
	Index         int
	Key           string
	Name          string
	Description   string
	Exercises     []string
	IsList        bool
	ExercisesText string
}

// GetWorkoutsResult carries the query result.
type GetWorkoutsResult struct {
	View ListView
	Rows []WorkoutRow
}

// QueryGetWorkouts loads /api/workouts/.
func QueryGetWorkouts(ctx context.Context, query ViewQuery, deps ViewDeps) GetWorkoutsResult {
	l := fetch.New(deps.Getter, backend.Collection[workout.Workout])
	s := load(ctx, l, deps.Endpoints.Endpoint(backend.ResourceWorkouts), query.Wait)

	rows := make([]WorkoutRow, 0, len(s.Items))
	for i, w := range s.Items {
		list, isList := w.ExerciseList()
		row := WorkoutRow{
			Index:       i + 1,
			Key:         w.Key(),
			Name:        w.Name,
			Description: w.Description,
			Exercises:   list,
			IsList:      isList,
		}
		if !isList {
			row.ExercisesText = w.ExercisesText()
		}
		rows = append(rows, row)
	}
	return GetWorkoutsResult{
		View: newListView("Workouts", "💪", "workout", "workouts", s),
		Rows: rows,
	}
}
