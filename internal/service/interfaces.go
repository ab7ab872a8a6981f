package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-blog/internal/media"
	"github.com/MKhiriev/go-blog/models"
)

// TokenCodec mints and verifies purpose-scoped tokens. *token.Codec
// implements it.
type TokenCodec interface {
	Issue(userID int64, purpose models.TokenPurpose, ttl time.Duration) (models.Token, error)
	Verify(raw string, purpose models.TokenPurpose, ttl time.Duration) (models.Token, error)
}

// AuthService is the credential lifecycle: registration, email
// verification, login and logout, password reset and change.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	ResendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, rawToken string) (models.User, error)

	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	Logout(ctx context.Context, session models.Token) error
	// Authenticate resolves a session token presented by a client.
	Authenticate(ctx context.Context, rawToken string) (models.Token, error)

	// RequestPasswordReset answers identically whether or not the email is
	// registered.
	RequestPasswordReset(ctx context.Context, email string) error
	// CompletePasswordReset consumes the reset token. Both password changing
	// methods end every session issued before the change.
	CompletePasswordReset(ctx context.Context, rawToken, newPassword string) error
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
}

type PostService interface {
	CreatePost(ctx context.Context, userID int64, req models.PostRequest) (models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.PostDetail, error)
	ListPosts(ctx context.Context, page int) (models.PostsPage, error)
	ListUserPosts(ctx context.Context, username string, page int) (models.PostsPage, error)
	UpdatePost(ctx context.Context, userID, postID int64, req models.PostRequest) (models.Post, error)
	DeletePost(ctx context.Context, userID, postID int64) error
}

type CommentService interface {
	AddComment(ctx context.Context, userID, postID int64, req models.CommentRequest) (models.Comment, error)
	// ListComments returns the comments of a post as a reply tree.
	ListComments(ctx context.Context, postID int64) ([]*models.CommentNode, error)
}

type LikeService interface {
	ToggleLike(ctx context.Context, userID, postID int64) (models.LikeState, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) (models.NotificationsList, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

type EventService interface {
	ListEvents(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error)
}

type AccountService interface {
	GetAccount(ctx context.Context, userID int64) (models.User, error)
	UpdateAccount(ctx context.Context, userID int64, req models.AccountUpdateRequest) (models.User, error)
	UploadAvatar(ctx context.Context, userID int64, upload media.Upload) (models.User, error)
	OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
