package store

import (
	"strings"

	"github.com/MKhiriev/go-blog/models"
)

// Table names.
var (
	usersTable           = models.User{}.TableName()
	passwordHistoryTable = models.PasswordHistoryEntry{}.TableName()
	postsTable           = models.Post{}.TableName()
	commentsTable        = models.Comment{}.TableName()
	likesTable           = models.PostLike{}.TableName()
	notificationsTable   = models.Notification{}.TableName()
	eventsTable          = models.UserEvent{}.TableName()
)

const revokedSessionsTable = "revoked_sessions"

// Column lists in scan order.
var (
	userColumns = []string{"id", "username", "email", "password_hash", "image_file", "verified", "created_at"}

	postColumns = []string{"p.id", "p.title", "p.content", "p.user_id", "u.username", "p.date_posted", "p.updated_at"}

	commentColumns = []string{"c.id", "c.post_id", "c.user_id", "u.username", "c.parent_id", "c.content", "c.created_at"}

	notificationColumns = []string{"id", "user_id", "actor_id", "kind", "post_id", "comment_id", "read", "created_at"}

	eventColumns = []string{"id", "user_id", "kind", "detail", "created_at"}
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
