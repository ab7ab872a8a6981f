package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose scopes what a signed token authorizes.
type TokenPurpose string

const (
	// PurposeVerify authorizes confirming the email address of an account.
	PurposeVerify TokenPurpose = "verify"
	// PurposeReset authorizes setting a new password without the old one.
	PurposeReset TokenPurpose = "reset"
	// PurposeSession authorizes API requests on behalf of a logged-in user.
	PurposeSession TokenPurpose = "session"
)

// String returns the purpose tag as carried in the "pur" claim.
func (p TokenPurpose) String() string {
	return string(p)
}

// Valid reports whether p is one of the known purposes.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeVerify, PurposeReset, PurposeSession:
		return true
	default:
		return false
	}
}

// TokenClaims is the claim set carried by every token the application issues.
// It embeds [jwt.RegisteredClaims] for the standard claims (sub, iss, iat,
// exp, jti) and adds the purpose tag.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Purpose is the "pur" claim; a token is only accepted for the purpose it
	// was minted for.
	Purpose TokenPurpose `json:"pur"`
}

// Token is a minted or verified token together with the values decoded from
// its claims.
type Token struct {
	// SignedString is the compact JWS form that travels in links and headers.
	SignedString string `json:"token"`

	// ID is the unique "jti" claim, used to revoke session tokens.
	ID string `json:"-"`

	// UserID is the identity claim ("sub").
	UserID int64 `json:"-"`

	// Purpose is the purpose the token was issued for.
	Purpose TokenPurpose `json:"-"`

	// IssuedAt and ExpiresAt bound the validity window.
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// String returns the compact serialization of the token.
func (t Token) String() string {
	return t.SignedString
}

// SubjectUserID parses a "sub" claim value into a user id.
func SubjectUserID(subject string) (int64, error) {
	if subject == "" {
		return 0, fmt.Errorf("empty subject")
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting subject to user id: %w", err)
	}

	return userID, nil
}

// Session is the result of a successful login: the authenticated user and the
// access token bound to them.
type Session struct {
	User        User   `json:"user"`
	AccessToken Token  `json:"access_token"`
	TokenType   string `json:"token_type"`
}
