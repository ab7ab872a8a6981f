package models

import "time"

// EventKind names an entry in the user-event log.
type EventKind string

const (
	EventRegistered             EventKind = "registered"
	EventVerificationSent       EventKind = "verification_sent"
	EventVerified               EventKind = "verified"
	EventLogin                  EventKind = "login"
	EventLoginFailed            EventKind = "login_failed"
	EventLogout                 EventKind = "logout"
	EventPasswordResetRequested EventKind = "password_reset_requested"
	EventPasswordChanged        EventKind = "password_changed"
	EventPostCreated            EventKind = "post_created"
	EventPostDeleted            EventKind = "post_deleted"
	EventCommentAdded           EventKind = "comment_added"
	EventLikeToggled            EventKind = "like_toggled"
)

// UserEvent is one entry of the lightweight activity log. UserID is nil for
// events that cannot be attributed to an account, such as a failed login for
// an unknown email.
type UserEvent struct {
	EventID   int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Kind      EventKind `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the UserEvent model.
func (e UserEvent) TableName() string {
	return "user_events"
}
