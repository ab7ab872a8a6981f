// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token mints and verifies the signed, time-limited, purpose-scoped
// tokens used for email verification, password reset and API sessions.
//
// Tokens are HS256 JWTs. The signing key of every purpose is derived from the
// server secret and a per-purpose salt, so a token minted for one purpose
// fails verification under any other. The "pur" claim is checked as well.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"github.com/golang-jwt/jwt/v5"
)

// Codec issues and verifies tokens. It is safe for concurrent use.
type Codec struct {
	issuer string
	keys   map[models.TokenPurpose][]byte
	now    func() time.Time
	ids    *utils.UUIDGenerator
	parser *jwt.Parser
}

// Option customizes a Codec.
type Option func(*Codec)

// WithClock replaces time.Now as the codec's source of the current time.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec builds a Codec from the auth configuration.
func NewCodec(cfg config.Auth, opts ...Option) (*Codec, error) {
	if cfg.SecretKey == "" || cfg.TokenIssuer == "" {
		return nil, errors.New("token codec needs a secret key and an issuer")
	}

	salts := map[models.TokenPurpose]string{
		models.PurposeVerify:  cfg.VerifySalt,
		models.PurposeReset:   cfg.ResetSalt,
		models.PurposeSession: cfg.SessionSalt,
	}

	c := &Codec{
		issuer: cfg.TokenIssuer,
		keys:   make(map[models.TokenPurpose][]byte, len(salts)),
		now:    time.Now,
		ids:    utils.NewUUIDGenerator(),
		// Time-based claims are checked by Verify itself so that the
		// signature is always validated before expiry.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for purpose, salt := range salts {
		if salt == "" {
			return nil, fmt.Errorf("no salt configured for %s tokens", purpose)
		}
		c.keys[purpose] = utils.DeriveKey(cfg.SecretKey, salt)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Issue mints a token binding userID to purpose, valid for ttl from now.
func (c *Codec) Issue(userID int64, purpose models.TokenPurpose, ttl time.Duration) (models.Token, error) {
	key, ok := c.keys[purpose]
	if !ok {
		return models.Token{}, fmt.Errorf("unknown token purpose %q", purpose)
	}
	if ttl <= 0 {
		return models.Token{}, errors.New("token lifetime must be positive")
	}

	// JWT timestamps have second precision.
	now := c.now().Truncate(time.Second)
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        c.ids.Generate(),
		},
		Purpose: purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		ID:           claims.ID,
		UserID:       userID,
		Purpose:      purpose,
		IssuedAt:     now,
		ExpiresAt:    now.Add(ttl),
	}, nil
}

// Verify checks that raw is an authentic token minted by this codec for
// purpose and that no more than ttl has passed since it was issued.
//
// It returns ErrInvalid for anything that is not an authentic token of the
// requested purpose, and ErrExpired for an authentic token that is too old
// or past its own expiry.
func (c *Codec) Verify(raw string, purpose models.TokenPurpose, ttl time.Duration) (models.Token, error) {
	key, ok := c.keys[purpose]
	if !ok {
		return models.Token{}, fmt.Errorf("%w: unknown purpose %q", ErrInvalid, purpose)
	}

	claims := &models.TokenClaims{}
	if _, err := c.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if claims.Issuer != c.issuer {
		return models.Token{}, fmt.Errorf("%w: unexpected issuer", ErrInvalid)
	}
	if claims.Purpose != purpose {
		return models.Token{}, fmt.Errorf("%w: minted for another purpose", ErrInvalid)
	}
	userID, err := models.SubjectUserID(claims.Subject)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if claims.IssuedAt == nil {
		return models.Token{}, fmt.Errorf("%w: missing issue time", ErrInvalid)
	}

	issuedAt := claims.IssuedAt.Time
	deadline := issuedAt.Add(ttl)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(deadline) {
		deadline = claims.ExpiresAt.Time
	}
	if c.now().After(deadline) {
		return models.Token{}, ErrExpired
	}

	return models.Token{
		SignedString: raw,
		ID:           claims.ID,
		UserID:       userID,
		Purpose:      purpose,
		IssuedAt:     issuedAt,
		ExpiresAt:    deadline,
	}, nil
}
