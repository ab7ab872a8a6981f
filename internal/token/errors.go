package token

import "errors"

var (
	// ErrInvalid is returned for a token that is malformed, fails signature
	// verification, names another issuer or purpose, or has no usable subject.
	ErrInvalid = errors.New("token is invalid")

	// ErrExpired is returned for an authentic token whose validity window has
	// passed.
	ErrExpired = errors.New("token has expired")
)
