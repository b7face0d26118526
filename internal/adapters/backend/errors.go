package backend

import (
	"errors"
	"fmt"
)

// Op names the kind of backend call that failed.
type Op string

const (
	OpRead       Op = "read"
	OpSave       Op = "save"
	OpAssignTeam Op = "assign_team"
)

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Op     Op
	Status int
}

// Error renders the user-facing message for the failed call.
func (e *HTTPError) Error() string {
	switch e.Op {
	case OpSave:
		return fmt.Sprintf("Save failed: %d", e.Status)
	case OpAssignTeam:
		return fmt.Sprintf("Team update failed: %d", e.Status)
	}
	return fmt.Sprintf("HTTP error %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0 for transport failures.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}
