package orchestrators

import (
	"context"
	"log/slog"

	"octofit/internal/domain/record"
	"octofit/internal/domain/user"
	"octofit/internal/domain/useredit"
	"octofit/internal/observability"
)

// SaveUserInput carries input for the save-user orchestrator.
type SaveUserInput struct {
	Session useredit.Session
	// SkipUnchangedTeam suppresses the team call when the selection did not change.
	SkipUnchangedTeam bool
}

// UserWriter defines the backend writes needed by SaveUser.
type UserWriter interface {
	UpdateProfile(ctx context.Context, userID string, update user.ProfileUpdate) error
	AssignTeam(ctx context.Context, userID string, assignment user.TeamAssignment) error
}

// SaveUserDeps holds dependencies for SaveUser.
type SaveUserDeps struct {
	Writer UserWriter
}

// ExecuteSaveUser updates the profile, then reassigns the team.
// PRE: input.Session is Editing
// POST: on success the returned session is Idle; on failure it is Editing with Err set
// INVARIANT: the team call is never issued before the profile call succeeded
func ExecuteSaveUser(ctx context.Context, input SaveUserInput, deps SaveUserDeps) (useredit.Session, error) {
	s := input.Session
	if err := s.BeginSave(); err != nil {
		return s, err
	}
	userID := s.User.ResourceID()

	if err := deps.Writer.UpdateProfile(ctx, userID, s.Profile()); err != nil {
		observability.RecordUserSave(observability.SaveProfileFailed)
		slog.Warn("user_event", "event", "profile_update_failed", "user_id", userID, "error", err.Error())
		_ = s.Fail(err)
		return s, err
	}

	if input.SkipUnchangedTeam && !s.TeamChanged() {
		slog.Debug("user_event", "event", "team_unchanged", "user_id", userID)
	} else {
		if err := deps.Writer.AssignTeam(ctx, userID, teamAssignment(s.Form.TeamID)); err != nil {
			observability.RecordUserSave(observability.SaveTeamFailed)
			slog.Warn("user_event", "event", "team_update_failed", "user_id", userID, "error", err.Error())
			_ = s.Fail(err)
			return s, err
		}
	}

	observability.RecordUserSave(observability.SaveOK)
	slog.Info("user_event", "event", "user_saved", "user_id", userID, "team_changed", s.TeamChanged())
	_ = s.Complete()
	return s, nil
}

// teamAssignment maps the selector value to the request body; "" is "no team".
func teamAssignment(teamID string) user.TeamAssignment {
	if teamID == "" {
		return user.TeamAssignment{}
	}
	return user.TeamAssignment{TeamID: record.StringID(teamID)}
}
