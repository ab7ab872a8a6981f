// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/crypto"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

// TokenTypeBearer is the scheme clients put in front of session tokens.
const TokenTypeBearer = "Bearer"

// dummyPassword is hashed once at construction. Login compares against it
// for unknown emails so both failure paths cost one bcrypt comparison.
const dummyPassword = "not-a-real-password"

// authService is the concrete implementation of AuthService.
//
// The per-user state machine is Unregistered -> Registered(unverified) ->
// Verified, orthogonal to the password history which grows by one entry on
// every successful password change and is never rewritten.
type authService struct {
	users    store.UserRepository
	sessions store.SessionRepository

	codec     TokenCodec
	hasher    crypto.PasswordHasher
	validator validators.Validator

	mail   *linkMailer
	events *eventRecorder

	// cfg holds TTLs and the password history policy.
	cfg config.Auth

	dummyHash string

	logger *logger.Logger
}

// NewAuthService wires the credential lifecycle. The returned service is safe
// for concurrent use; all state is read-only after construction.
func NewAuthService(
	storages *store.Storages,
	codec TokenCodec,
	hasher crypto.PasswordHasher,
	mailer adapter.Mailer,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (AuthService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}

	events := newEventRecorder(storages.EventRepository)

	return &authService{
		users:     storages.UserRepository,
		sessions:  storages.SessionRepository,
		codec:     codec,
		hasher:    hasher,
		validator: validators.NewBlogValidator(),
		mail:      newLinkMailer(codec, mailer, cfg, events),
		events:    events,
		cfg:       cfg.Auth,
		dummyHash: dummyHash,
		logger:    logger,
	}, nil
}

// Register creates an unverified account together with its first password
// history entry and mails a verification link.
//
// Returns ErrInvalidDataProvided for malformed input and ErrEmailTaken or
// ErrUsernameTaken (both ErrConflict) when the identity is in use. A failed
// verification mail is logged and does not undo the registration; the user
// can ask for a new link.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	username := strings.TrimSpace(req.Username)
	email := models.NormalizeEmail(req.Email)

	if err := checkIdentityAvailable(ctx, a.users, username, email, 0); err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", username).Msg("identity is not available")
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		ImageFile:    models.DefaultImageFile,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", username).Msg("user creation ended with error")
		return models.User{}, mapStoreError(err, "user creation ended with error")
	}

	a.events.record(ctx, user.UserID, models.EventRegistered, "")

	if err = a.mail.sendVerification(ctx, user); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Register").Int64("user_id", user.UserID).Msg("verification mail was not sent")
	}

	return user, nil
}

// ResendVerification mails a fresh verification link. It reports success for
// unknown and already verified addresses alike.
func (a *authService) ResendVerification(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.ResendVerification").Msg("no account for email, nothing to send")
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResendVerification").Msg("user search by email failed")
		return mapStoreError(err, "user search by email failed")
	}

	if user.Verified {
		return nil
	}

	if err = a.mail.sendVerification(ctx, user); err != nil {
		log.Warn().Err(err).Str("func", "*authService.ResendVerification").Int64("user_id", user.UserID).Msg("verification mail was not sent")
	}

	return nil
}

// VerifyEmail confirms the address a verification token was issued for.
// Verifying an already verified account succeeds without changes.
func (a *authService) VerifyEmail(ctx context.Context, rawToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	tok, err := a.verifyToken(rawToken, models.PurposeVerify, a.cfg.VerifyTokenTTL)
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Msg("verification token rejected")
		return models.User{}, err
	}

	user, err := a.users.FindUserByID(ctx, tok.UserID)
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Int64("user_id", tok.UserID).Msg("user search by id failed")
		return models.User{}, mapStoreError(err, "user search by id failed")
	}

	if user.Verified {
		return user, nil
	}

	if err = a.users.SetVerified(ctx, user.UserID); err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Int64("user_id", user.UserID).Msg("marking user verified failed")
		return models.User{}, mapStoreError(err, "marking user verified failed")
	}
	user.Verified = true

	a.events.record(ctx, user.UserID, models.EventVerified, "")

	return user, nil
}

// Login checks email and password and issues a session token.
//
// Unknown emails and wrong passwords both yield ErrAuthFailed. Correct
// credentials of an unverified account yield ErrNotVerified.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		a.hasher.Compare(a.dummyHash, req.Password)
		a.events.record(ctx, 0, models.EventLoginFailed, "unknown email")
		log.Info().Str("func", "*authService.Login").Msg("login for unknown email")
		return models.Session{}, ErrAuthFailed
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.Session{}, mapStoreError(err, "user search by email failed")
	}

	if !a.hasher.Compare(user.PasswordHash, req.Password) {
		a.events.record(ctx, user.UserID, models.EventLoginFailed, "wrong password")
		log.Info().Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.Session{}, ErrAuthFailed
	}

	if !user.Verified {
		log.Info().Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("login before email verification")
		return models.Session{}, ErrNotVerified
	}

	tok, err := a.codec.Issue(user.UserID, models.PurposeSession, a.cfg.SessionTokenTTL)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("session token creation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	a.events.record(ctx, user.UserID, models.EventLogin, "")

	return models.Session{
		User:        user,
		AccessToken: tok,
		TokenType:   TokenTypeBearer,
	}, nil
}

// Logout revokes the session token until it would have expired anyway.
func (a *authService) Logout(ctx context.Context, session models.Token) error {
	if session.ID == "" {
		return ErrTokenInvalid
	}

	if err := a.sessions.RevokeSession(ctx, session.ID, session.UserID, session.ExpiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Int64("user_id", session.UserID).Msg("revoking session failed")
		return fmt.Errorf("revoking session failed: %w", err)
	}

	a.events.record(ctx, session.UserID, models.EventLogout, "")

	return nil
}

// Authenticate verifies a session token. Tokens revoked by Logout and tokens
// issued before the latest password change fail with ErrSessionRevoked.
func (a *authService) Authenticate(ctx context.Context, rawToken string) (models.Token, error) {
	tok, err := a.verifyToken(rawToken, models.PurposeSession, a.cfg.SessionTokenTTL)
	if err != nil {
		return models.Token{}, err
	}

	if err = a.checkTokenCurrent(ctx, tok, ErrSessionRevoked); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Authenticate").Int64("user_id", tok.UserID).Msg("session token rejected")
		return models.Token{}, err
	}

	return tok, nil
}

// RequestPasswordReset mails a reset link when an account matches email.
// Nothing is sent otherwise, and the caller sees success in both cases.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.RequestPasswordReset").Msg("no account for email, nothing to send")
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.RequestPasswordReset").Msg("user search by email failed")
		return mapStoreError(err, "user search by email failed")
	}

	a.events.record(ctx, user.UserID, models.EventPasswordResetRequested, "")

	if err = a.mail.sendReset(ctx, user); err != nil {
		log.Warn().Err(err).Str("func", "*authService.RequestPasswordReset").Int64("user_id", user.UserID).Msg("reset mail was not sent")
	}

	return nil
}

// CompletePasswordReset sets a new password for the account a reset token
// was issued for. The password must not repeat any of the most recent
// history entries.
//
// A reset token works once: after a successful reset its id is denylisted,
// and every reset token issued before the new password fails with
// ErrTokenUsed.
func (a *authService) CompletePasswordReset(ctx context.Context, rawToken, newPassword string) error {
	log := logger.FromContext(ctx)

	tok, err := a.verifyToken(rawToken, models.PurposeReset, a.cfg.ResetTokenTTL)
	if err != nil {
		log.Err(err).Str("func", "*authService.CompletePasswordReset").Msg("reset token rejected")
		return err
	}

	if err = a.validator.Validate(ctx, models.ResetPasswordRequest{Password: newPassword}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByID(ctx, tok.UserID)
	if err != nil {
		log.Err(err).Str("func", "*authService.CompletePasswordReset").Int64("user_id", tok.UserID).Msg("user search by id failed")
		return mapStoreError(err, "user search by id failed")
	}

	if err = a.checkTokenCurrent(ctx, tok, ErrTokenUsed); err != nil {
		log.Err(err).Str("func", "*authService.CompletePasswordReset").Int64("user_id", user.UserID).Msg("reset token rejected")
		return err
	}

	if err = a.setPassword(ctx, user.UserID, newPassword); err != nil {
		return err
	}

	if err = a.sessions.RevokeSession(ctx, tok.ID, user.UserID, tok.ExpiresAt); err != nil {
		log.Warn().Err(err).Str("func", "*authService.CompletePasswordReset").Int64("user_id", user.UserID).Msg("reset token was not denylisted")
	}

	a.events.record(ctx, user.UserID, models.EventPasswordChanged, "reset")

	return nil
}

// ChangePassword replaces the password of a logged-in user who proves the
// current one. The reuse rule of CompletePasswordReset applies, and the
// caller's own session ends with the others.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("user search by id failed")
		return mapStoreError(err, "user search by id failed")
	}

	if !a.hasher.Compare(user.PasswordHash, req.CurrentPassword) {
		log.Info().Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("wrong current password")
		return ErrAuthFailed
	}

	if err = a.setPassword(ctx, userID, req.NewPassword); err != nil {
		return err
	}

	a.events.record(ctx, userID, models.EventPasswordChanged, "change")

	return nil
}

// setPassword rejects passwords matching any of the newest
// PasswordHistoryDepth hashes, then stores the new hash and its history
// entry in one repository call.
func (a *authService) setPassword(ctx context.Context, userID int64, password string) error {
	log := logger.FromContext(ctx)

	recent, err := a.users.RecentPasswordHashes(ctx, userID, a.cfg.PasswordHistoryDepth)
	if err != nil {
		log.Err(err).Str("func", "*authService.setPassword").Int64("user_id", userID).Msg("reading password history failed")
		return mapStoreError(err, "reading password history failed")
	}

	// Hashes are salted, so each one has to be checked with Compare.
	for _, hash := range recent {
		if a.hasher.Compare(hash, password) {
			log.Info().Str("func", "*authService.setPassword").Int64("user_id", userID).Msg("recently used password rejected")
			return ErrPasswordReused
		}
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*authService.setPassword").Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.users.UpdatePassword(ctx, userID, hash, a.cfg.PasswordHistoryRetain); err != nil {
		log.Err(err).Str("func", "*authService.setPassword").Int64("user_id", userID).Msg("updating password failed")
		return mapStoreError(err, "updating password failed")
	}

	return nil
}

// checkTokenCurrent fails with rejected when tok is on the denylist or was
// issued before the user's current password was set. A user without password
// history no longer exists, which rejects the token as well.
//
// Token times have second precision, so the change time is truncated before
// comparing.
func (a *authService) checkTokenCurrent(ctx context.Context, tok models.Token, rejected error) error {
	revoked, err := a.sessions.IsSessionRevoked(ctx, tok.ID)
	if err != nil {
		return fmt.Errorf("token denylist lookup failed: %w", err)
	}
	if revoked {
		return rejected
	}

	changedAt, err := a.users.PasswordChangedAt(ctx, tok.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return rejected
	}
	if err != nil {
		return mapStoreError(err, "reading password change time failed")
	}

	if tok.IssuedAt.Before(changedAt.Truncate(time.Second)) {
		return rejected
	}

	return nil
}

func (a *authService) verifyToken(raw string, purpose models.TokenPurpose, ttl time.Duration) (models.Token, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Token{}, ErrTokenInvalid
	}

	tok, err := a.codec.Verify(raw, purpose, ttl)
	if err != nil {
		return models.Token{}, mapTokenError(err)
	}

	return tok, nil
}

// checkIdentityAvailable fails with ErrEmailTaken or ErrUsernameTaken when
// another account than selfID owns email or username. selfID 0 means no
// account is exempt.
func checkIdentityAvailable(ctx context.Context, users store.UserRepository, username, email string, selfID int64) error {
	owner, err := users.FindUserByEmail(ctx, email)
	switch {
	case err == nil && owner.UserID != selfID:
		return ErrEmailTaken
	case err != nil && !errors.Is(err, store.ErrUserNotFound):
		return mapStoreError(err, "user search by email failed")
	}

	owner, err = users.FindUserByUsername(ctx, username)
	switch {
	case err == nil && owner.UserID != selfID:
		return ErrUsernameTaken
	case err != nil && !errors.Is(err, store.ErrUserNotFound):
		return mapStoreError(err, "user search by username failed")
	}

	return nil
}
