// Package useredit models the edit-user flow: Idle -> Editing -> Saving,
// then back to Idle on success or to Editing with an error on failure.
package useredit

import (
	"errors"

	"octofit/internal/domain/user"
)

// State is the step of the edit flow.
type State string

const (
	StateIdle    State = "idle"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

// Domain errors
var (
	ErrNotEditing = errors.New("no edit in progress")
	ErrNotSaving  = errors.New("no save in progress")
)

// Form holds the editable fields. TeamID "" means "no team".
type Form struct {
	Username string
	Email    string
	Password string
	TeamID   string
}

// Session holds state for one edit of one user.
type Session struct {
	State State
	User  user.User // row as fetched; the baseline for change detection
	Form  Form
	Err   string
}

// Open starts editing u.
// POST: State is Editing; the form carries u's username, email and team;
// the password is always blank
func (s *Session) Open(u user.User) {
	*s = Session{
		State: StateEditing,
		User:  u,
		Form: Form{
			Username: u.Username,
			Email:    u.Email,
			TeamID:   u.TeamID(),
		},
	}
}

// Resume rebuilds an editing session from submitted form values.
func Resume(u user.User, f Form) Session {
	var s Session
	s.Open(u)
	s.Form = f
	return s
}

// Cancel discards all edits.
func (s *Session) Cancel() {
	*s = Session{State: StateIdle}
}

// BeginSave moves Editing -> Saving.
func (s *Session) BeginSave() error {
	if s.State != StateEditing {
		return ErrNotEditing
	}
	s.State = StateSaving
	s.Err = ""
	return nil
}

// Fail moves Saving -> Editing and keeps the form open with the error message.
func (s *Session) Fail(cause error) error {
	if s.State != StateSaving {
		return ErrNotSaving
	}
	s.State = StateEditing
	if cause != nil {
		s.Err = cause.Error()
	}
	return nil
}

// Complete moves Saving -> Idle and closes the form.
func (s *Session) Complete() error {
	if s.State != StateSaving {
		return ErrNotSaving
	}
	*s = Session{State: StateIdle}
	return nil
}

// IsOpen reports whether the edit form is shown.
func (s Session) IsOpen() bool {
	return s.State == StateEditing || s.State == StateSaving
}

// TeamChanged reports whether the selected team differs from the user's current team.
func (s Session) TeamChanged() bool {
	return s.Form.TeamID != s.User.TeamID()
}

// Profile builds the PATCH body; the password is included only when entered.
func (s Session) Profile() user.ProfileUpdate {
	return user.ProfileUpdate{
		Username: s.Form.Username,
		Email:    s.Form.Email,
		Password: s.Form.Password,
	}
}
