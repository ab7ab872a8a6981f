package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

// Paths of the API endpoints that consume emailed tokens.
const (
	VerifyEmailPath   = "/api/auth/verify/"
	ResetPasswordPath = "/api/auth/password/reset/"
)

// linkMailer mints verification and reset tokens and mails them as links.
type linkMailer struct {
	codec     TokenCodec
	mailer    adapter.Mailer
	baseURL   string
	verifyTTL time.Duration
	resetTTL  time.Duration
	events    *eventRecorder
}

func newLinkMailer(codec TokenCodec, mailer adapter.Mailer, cfg *config.StructuredConfig, events *eventRecorder) *linkMailer {
	return &linkMailer{
		codec:     codec,
		mailer:    mailer,
		baseURL:   cfg.App.BaseURL,
		verifyTTL: cfg.Auth.VerifyTokenTTL,
		resetTTL:  cfg.Auth.ResetTokenTTL,
		events:    events,
	}
}

func (m *linkMailer) sendVerification(ctx context.Context, user models.User) error {
	tok, err := m.codec.Issue(user.UserID, models.PurposeVerify, m.verifyTTL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	err = m.send(ctx, adapter.Message{
		To:      user.Email,
		Subject: "Verify Your Email",
		Body:    fmt.Sprintf("Verify your email:\n%s\n", m.link(VerifyEmailPath, tok)),
	})
	if err != nil {
		return err
	}

	m.events.record(ctx, user.UserID, models.EventVerificationSent, "")
	return nil
}

func (m *linkMailer) sendReset(ctx context.Context, user models.User) error {
	tok, err := m.codec.Issue(user.UserID, models.PurposeReset, m.resetTTL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return m.send(ctx, adapter.Message{
		To:      user.Email,
		Subject: "Password Reset",
		Body: fmt.Sprintf("Reset your password:\n%s\n\nIf you did not make this request, ignore this email.\n",
			m.link(ResetPasswordPath, tok)),
	})
}

func (m *linkMailer) send(ctx context.Context, msg adapter.Message) error {
	if err := m.mailer.Send(ctx, msg); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*linkMailer.send").Str("subject", msg.Subject).Msg("mail delivery failed")
		return fmt.Errorf("mail delivery failed: %w", err)
	}
	return nil
}

func (m *linkMailer) link(path string, tok models.Token) string {
	return strings.TrimRight(m.baseURL, "/") + path + url.PathEscape(tok.SignedString)
}
