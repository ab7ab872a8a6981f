package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: user records and their password
// history. Every multi-row mutation runs in one transaction.
type UserRepository interface {
	// CreateUser inserts user together with its first password history entry.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// UpdatePassword sets the password hash, appends it to the history and,
	// when retain > 0, deletes all but the newest retain history rows.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string, retain int) error

	// SetVerified marks the user's email as verified. It is idempotent.
	SetVerified(ctx context.Context, userID int64) error

	// AppendPasswordHistory adds one history row without touching the user.
	AppendPasswordHistory(ctx context.Context, userID int64, passwordHash string) error

	// RecentPasswordHashes returns up to limit hashes, most recent first.
	RecentPasswordHashes(ctx context.Context, userID int64, limit int) ([]string, error)

	// PasswordChangedAt returns when the current password was set, that is
	// the time of the newest history entry.
	PasswordChangedAt(ctx context.Context, userID int64) (time.Time, error)

	// UpdateProfile writes username and email. The verified flag is cleared
	// in the same statement when the email differs from the stored one.
	UpdateProfile(ctx context.Context, userID int64, username, email string) (models.User, error)

	// SetImageFile points the account at another avatar file.
	SetImageFile(ctx context.Context, userID int64, imageFile string) (models.User, error)
}

// SessionRepository is the denylist of revoked session tokens.
type SessionRepository interface {
	RevokeSession(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
	// PurgeExpiredSessions deletes rows whose expiry is before now and
	// returns how many were removed.
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// EventRepository stores the user-event log.
type EventRepository interface {
	SaveEvent(ctx context.Context, event models.UserEvent) error
	ListEvents(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error)
}

// PostRepository stores posts. List methods return the page and the total
// number of matching posts, newest first.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]models.Post, int64, error)
	ListPostsByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

// CommentRepository stores comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, commentID int64) (models.Comment, error)
	// ListComments returns every comment on a post, oldest first.
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
}

// LikeRepository stores post likes.
type LikeRepository interface {
	// ToggleLike adds the like when absent and removes it otherwise, in one
	// transaction, and returns the resulting state.
	ToggleLike(ctx context.Context, postID, userID int64) (models.LikeState, error)
	CountLikes(ctx context.Context, postID int64) (int64, error)
}

// NotificationRepository stores notifications.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	// MarkRead marks one of userID's notifications as read.
	MarkRead(ctx context.Context, notificationID, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// AvatarStorage stores profile picture bytes by object name.
type AvatarStorage interface {
	SaveAvatar(ctx context.Context, name, contentType string, data []byte) error
	// OpenAvatar returns the object contents and its content type.
	OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error)
	DeleteAvatar(ctx context.Context, name string) error
}

// Introspector gives the read-only database viewer access to raw tables.
type Introspector interface {
	ListTables(ctx context.Context) ([]string, error)
	// ReadTable returns the column names and the rows rendered as strings.
	// limit <= 0 reads every row.
	ReadTable(ctx context.Context, table string, limit int) ([]string, [][]string, error)
}
