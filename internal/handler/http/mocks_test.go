package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/media"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn              func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	resendVerificationFn    func(ctx context.Context, email string) error
	verifyEmailFn           func(ctx context.Context, raw string) (models.User, error)
	loginFn                 func(ctx context.Context, req models.LoginRequest) (models.Session, error)
	logoutFn                func(ctx context.Context, session models.Token) error
	authenticateFn          func(ctx context.Context, raw string) (models.Token, error)
	requestPasswordResetFn  func(ctx context.Context, email string) error
	completePasswordResetFn func(ctx context.Context, raw, newPassword string) error
	changePasswordFn        func(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) ResendVerification(ctx context.Context, email string) error {
	return m.resendVerificationFn(ctx, email)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, raw string) (models.User, error) {
	return m.verifyEmailFn(ctx, raw)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) Logout(ctx context.Context, session models.Token) error {
	return m.logoutFn(ctx, session)
}

func (m *mockAuthService) Authenticate(ctx context.Context, raw string) (models.Token, error) {
	return m.authenticateFn(ctx, raw)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestPasswordResetFn(ctx, email)
}

func (m *mockAuthService) CompletePasswordReset(ctx context.Context, raw, newPassword string) error {
	return m.completePasswordResetFn(ctx, raw, newPassword)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, userID, req)
}

type mockPostService struct {
	createPostFn    func(ctx context.Context, userID int64, req models.PostRequest) (models.Post, error)
	getPostFn       func(ctx context.Context, postID int64) (models.PostDetail, error)
	listPostsFn     func(ctx context.Context, page int) (models.PostsPage, error)
	listUserPostsFn func(ctx context.Context, username string, page int) (models.PostsPage, error)
	updatePostFn    func(ctx context.Context, userID, postID int64, req models.PostRequest) (models.Post, error)
	deletePostFn    func(ctx context.Context, userID, postID int64) error
}

func (m *mockPostService) CreatePost(ctx context.Context, userID int64, req models.PostRequest) (models.Post, error) {
	return m.createPostFn(ctx, userID, req)
}

func (m *mockPostService) GetPost(ctx context.Context, postID int64) (models.PostDetail, error) {
	return m.getPostFn(ctx, postID)
}

func (m *mockPostService) ListPosts(ctx context.Context, page int) (models.PostsPage, error) {
	return m.listPostsFn(ctx, page)
}

func (m *mockPostService) ListUserPosts(ctx context.Context, username string, page int) (models.PostsPage, error) {
	return m.listUserPostsFn(ctx, username, page)
}

func (m *mockPostService) UpdatePost(ctx context.Context, userID, postID int64, req models.PostRequest) (models.Post, error) {
	return m.updatePostFn(ctx, userID, postID, req)
}

func (m *mockPostService) DeletePost(ctx context.Context, userID, postID int64) error {
	return m.deletePostFn(ctx, userID, postID)
}

type mockCommentService struct {
	addCommentFn   func(ctx context.Context, userID, postID int64, req models.CommentRequest) (models.Comment, error)
	listCommentsFn func(ctx context.Context, postID int64) ([]*models.CommentNode, error)
}

func (m *mockCommentService) AddComment(ctx context.Context, userID, postID int64, req models.CommentRequest) (models.Comment, error) {
	return m.addCommentFn(ctx, userID, postID, req)
}

func (m *mockCommentService) ListComments(ctx context.Context, postID int64) ([]*models.CommentNode, error) {
	return m.listCommentsFn(ctx, postID)
}

type mockLikeService struct {
	toggleLikeFn func(ctx context.Context, userID, postID int64) (models.LikeState, error)
}

func (m *mockLikeService) ToggleLike(ctx context.Context, userID, postID int64) (models.LikeState, error) {
	return m.toggleLikeFn(ctx, userID, postID)
}

type mockNotificationService struct {
	listFn     func(ctx context.Context, userID int64, unreadOnly bool) (models.NotificationsList, error)
	markReadFn func(ctx context.Context, userID, notificationID int64) error
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) (models.NotificationsList, error) {
	return m.listFn(ctx, userID, unreadOnly)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return m.markReadFn(ctx, userID, notificationID)
}

type mockEventService struct {
	listEventsFn func(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error)
}

func (m *mockEventService) ListEvents(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error) {
	return m.listEventsFn(ctx, userID, limit)
}

type mockAccountService struct {
	getAccountFn    func(ctx context.Context, userID int64) (models.User, error)
	updateAccountFn func(ctx context.Context, userID int64, req models.AccountUpdateRequest) (models.User, error)
	uploadAvatarFn  func(ctx context.Context, userID int64, upload media.Upload) (models.User, error)
	openAvatarFn    func(ctx context.Context, name string) (io.ReadCloser, string, error)
}

func (m *mockAccountService) GetAccount(ctx context.Context, userID int64) (models.User, error) {
	return m.getAccountFn(ctx, userID)
}

func (m *mockAccountService) UpdateAccount(ctx context.Context, userID int64, req models.AccountUpdateRequest) (models.User, error) {
	return m.updateAccountFn(ctx, userID, req)
}

func (m *mockAccountService) UploadAvatar(ctx context.Context, userID int64, upload media.Upload) (models.User, error) {
	return m.uploadAvatarFn(ctx, userID, upload)
}

func (m *mockAccountService) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return m.openAvatarFn(ctx, name)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	testUserID       int64 = 42
	testSessionToken       = "session-token"
)

// acceptingAuth authenticates testSessionToken as testUserID and rejects
// everything else.
func acceptingAuth() *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, raw string) (models.Token, error) {
			if raw != testSessionToken {
				return models.Token{}, service.ErrTokenInvalid
			}
			return models.Token{
				SignedString: raw,
				ID:           "jti-1",
				UserID:       testUserID,
				Purpose:      models.PurposeSession,
			}, nil
		},
	}
}

// newTestRouter builds the full router on top of svcs. Missing auth and
// app info services are filled in with defaults.
func newTestRouter(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AuthService == nil {
		svcs.AuthService = acceptingAuth()
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, config.Server{}, logger.Nop())
}

// serve sends a request through the router. A non-empty token is sent as a
// bearer Authorization header.
func serve(t *testing.T, h *Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// decodeError returns the message of a JSON error response.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}
