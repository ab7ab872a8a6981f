// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(t *testing.T, auth *mockAuthService) *Handler {
	t.Helper()
	if auth.authenticateFn == nil {
		auth.authenticateFn = acceptingAuth().authenticateFn
	}
	return newTestRouter(t, &service.Services{AuthService: auth})
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "created",
			body:       `{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`,
			wantStatus: http.StatusCreated,
			wantCalled: true,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"username":"alice","admin":true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid data",
			body:       `{"username":"","email":"x","password":"y"}`,
			serviceErr: fmt.Errorf("%w: username is required", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantCalled: true,
		},
		{
			name:       "email taken",
			body:       `{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`,
			serviceErr: service.ErrEmailTaken,
			wantStatus: http.StatusConflict,
			wantCalled: true,
		},
		{
			name:       "username taken",
			body:       `{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`,
			serviceErr: service.ErrUsernameTaken,
			wantStatus: http.StatusConflict,
			wantCalled: true,
		},
		{
			name:       "internal error is not described",
			body:       `{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`,
			serviceErr: errors.New("db is down"),
			wantStatus: http.StatusInternalServerError,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := newAuthHandler(t, &mockAuthService{
				registerFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
					called = true
					if tt.serviceErr != nil {
						return models.User{}, tt.serviceErr
					}
					return models.User{UserID: 1, Username: req.Username, Email: req.Email, ImageFile: models.DefaultImageFile}, nil
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/auth/register", tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantStatus == http.StatusCreated {
				var user models.User
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
				assert.Equal(t, "alice", user.Username)
				assert.NotContains(t, rec.Body.String(), "password")
				return
			}
			msg := decodeError(t, rec)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, app.MsgInternalServerError, msg)
			}
		})
	}
}

// ─────────────────────────────────────────────
// verification
// ─────────────────────────────────────────────

func TestVerifyEmail(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "verified", wantStatus: http.StatusOK},
		{name: "expired link", serviceErr: service.ErrTokenExpired, wantStatus: http.StatusGone},
		{name: "tampered link", serviceErr: service.ErrTokenInvalid, wantStatus: http.StatusBadRequest},
		{name: "account gone", serviceErr: fmt.Errorf("%w: user", service.ErrNotFound), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken string
			h := newAuthHandler(t, &mockAuthService{
				verifyEmailFn: func(_ context.Context, raw string) (models.User, error) {
					gotToken = raw
					return models.User{UserID: 1, Verified: true}, tt.serviceErr
				},
			})

			rec := serve(t, h, http.MethodGet, "/api/auth/verify/abc.def.ghi", "", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "abc.def.ghi", gotToken)
		})
	}
}

func TestResendVerification(t *testing.T) {
	var gotEmail string
	h := newAuthHandler(t, &mockAuthService{
		resendVerificationFn: func(_ context.Context, email string) error {
			gotEmail = email
			return nil
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/auth/verify/resend", `{"email":"bob@example.com"}`, "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "bob@example.com", gotEmail)
	assert.Contains(t, rec.Body.String(), app.MsgCheckInbox)
}

// ─────────────────────────────────────────────
// login / logout
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	expires := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := newAuthHandler(t, &mockAuthService{
		loginFn: func(_ context.Context, req models.LoginRequest) (models.Session, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			assert.Equal(t, "s3cret-pass", req.Password)
			return models.Session{
				User:        models.User{UserID: 7, Username: "alice"},
				AccessToken: models.Token{SignedString: "signed.jwt.value", ExpiresAt: expires},
				TokenType:   service.TokenTypeBearer,
			}, nil
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"s3cret-pass"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.value", rec.Header().Get("Authorization"))

	var session models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "signed.jwt.value", session.AccessToken.SignedString)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.True(t, expires.Equal(session.AccessToken.ExpiresAt))
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "wrong credentials", serviceErr: service.ErrAuthFailed, wantStatus: http.StatusUnauthorized},
		{name: "not verified", serviceErr: service.ErrNotVerified, wantStatus: http.StatusForbidden},
		{name: "invalid data", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandler(t, &mockAuthService{
				loginFn: func(context.Context, models.LoginRequest) (models.Session, error) {
					return models.Session{}, tt.serviceErr
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"x"}`, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Header().Get("Authorization"))
			assert.Equal(t, tt.serviceErr.Error(), decodeError(t, rec))
		})
	}
}

func TestLogout(t *testing.T) {
	var revoked models.Token
	h := newAuthHandler(t, &mockAuthService{
		logoutFn: func(_ context.Context, session models.Token) error {
			revoked = session
			return nil
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/auth/logout", "", testSessionToken)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "jti-1", revoked.ID)
	assert.Equal(t, testUserID, revoked.UserID)
}

func TestLogout_RequiresSession(t *testing.T) {
	h := newAuthHandler(t, &mockAuthService{
		logoutFn: func(context.Context, models.Token) error {
			t.Fatal("logout must not be reached without a session")
			return nil
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/auth/logout", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// password reset / change
// ─────────────────────────────────────────────

func TestRequestPasswordReset_AlwaysAccepted(t *testing.T) {
	calls := 0
	h := newAuthHandler(t, &mockAuthService{
		requestPasswordResetFn: func(context.Context, string) error {
			calls++
			return nil
		},
	})

	known := serve(t, h, http.MethodPost, "/api/auth/password/reset", `{"email":"alice@example.com"}`, "")
	unknown := serve(t, h, http.MethodPost, "/api/auth/password/reset", `{"email":"nobody@example.com"}`, "")

	assert.Equal(t, 2, calls)
	assert.Equal(t, http.StatusAccepted, known.Code)
	assert.Equal(t, known.Code, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestCompletePasswordReset(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "password set", wantStatus: http.StatusNoContent},
		{name: "reused password", serviceErr: service.ErrPasswordReused, wantStatus: http.StatusUnprocessableEntity},
		{name: "expired link", serviceErr: service.ErrTokenExpired, wantStatus: http.StatusGone},
		{name: "weak password", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken, gotPassword string
			h := newAuthHandler(t, &mockAuthService{
				completePasswordResetFn: func(_ context.Context, raw, newPassword string) error {
					gotToken, gotPassword = raw, newPassword
					return tt.serviceErr
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/auth/password/reset/reset.tok.en", `{"password":"n3w-pass"}`, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "reset.tok.en", gotToken)
			assert.Equal(t, "n3w-pass", gotPassword)
		})
	}
}

func TestChangePassword(t *testing.T) {
	var gotUserID int64
	var gotReq models.ChangePasswordRequest
	h := newAuthHandler(t, &mockAuthService{
		changePasswordFn: func(_ context.Context, userID int64, req models.ChangePasswordRequest) error {
			gotUserID, gotReq = userID, req
			return nil
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/auth/password/change",
		`{"current_password":"old-pass","new_password":"n3w-pass"}`, testSessionToken)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testUserID, gotUserID)
	assert.Equal(t, "old-pass", gotReq.CurrentPassword)
	assert.Equal(t, "n3w-pass", gotReq.NewPassword)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	h := newAuthHandler(t, &mockAuthService{
		changePasswordFn: func(context.Context, int64, models.ChangePasswordRequest) error {
			return service.ErrAuthFailed
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/auth/password/change",
		`{"current_password":"nope","new_password":"n3w-pass"}`, testSessionToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
