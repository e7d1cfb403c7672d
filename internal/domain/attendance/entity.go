package attendance

import (
	"fmt"
	"time"
)

// Action is the closed set of attendance actions a user can perform.
type Action string

const (
	ActionLogin          Action = "login"
	ActionLogout         Action = "logout"
	ActionBreakStarted   Action = "break_started"
	ActionBreakEnded     Action = "break_ended"
	ActionRegularization Action = "regularization"
)

// ParseAction converts a raw tag into an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionLogin, ActionLogout, ActionBreakStarted, ActionBreakEnded, ActionRegularization:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// IsLive reports whether the action is one of the four real-time actions.
func (a Action) IsLive() bool {
	switch a {
	case ActionLogin, ActionLogout, ActionBreakStarted, ActionBreakEnded:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// Event is a single attendance action as stored by the backend.
type Event struct {
	ID             string
	UserID         string
	CompanyID      string
	Timestamp      time.Time
	Action         Action
	ApprovalStatus *ApprovalStatus

	// Regularization only: the claimed session, independent of Timestamp.
	LoginTime  *time.Time
	LogoutTime *time.Time

	Latitude   *float64
	Longitude  *float64
	ReviewedBy *string
	ReviewedAt *time.Time
	Notes      *string
	CreatedAt  time.Time
}

// IsApproved reports whether the event carries an Approved status.
func (e Event) IsApproved() bool {
	return e.ApprovalStatus != nil && *e.ApprovalStatus == ApprovalApproved
}

// IsVisible reports whether the event counts toward worked days.
// Regularizations only count once approved.
func (e Event) IsVisible() bool {
	if e.Action == ActionRegularization {
		return e.IsApproved()
	}
	return true
}

// HasValidTimestamp is false for events whose timestamp never parsed.
func (e Event) HasValidTimestamp() bool {
	return !e.Timestamp.IsZero()
}
