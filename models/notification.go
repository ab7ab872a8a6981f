package models

import "time"

// NotificationKind tells the recipient what happened.
type NotificationKind string

const (
	NotificationComment NotificationKind = "comment"
	NotificationReply   NotificationKind = "reply"
	NotificationLike    NotificationKind = "like"
)

// Notification informs a user about another user's activity on their content.
type Notification struct {
	NotificationID int64            `json:"id"`
	UserID         int64            `json:"user_id"`
	ActorID        int64            `json:"actor_id"`
	Kind           NotificationKind `json:"kind"`
	PostID         int64            `json:"post_id"`
	CommentID      *int64           `json:"comment_id,omitempty"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Notification model.
func (n Notification) TableName() string {
	return "notifications"
}

// NotificationsList is the payload returned to the recipient.
type NotificationsList struct {
	Notifications []Notification `json:"notifications"`
	Unread        int64          `json:"unread"`
}
