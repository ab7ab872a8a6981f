package service

import (
	"errors"
	"fmt"
)

// Lifecycle outcomes. Handlers translate these into status codes.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrConflict is returned when a username or email is already taken.
	ErrConflict      = errors.New("already taken")
	ErrEmailTaken    = fmt.Errorf("%w: email is already registered", ErrConflict)
	ErrUsernameTaken = fmt.Errorf("%w: username is already taken", ErrConflict)

	// ErrAuthFailed does not tell unknown emails from wrong passwords.
	ErrAuthFailed = errors.New("invalid email or password")

	// ErrNotVerified is returned for correct credentials of an account whose
	// email has not been verified yet.
	ErrNotVerified = errors.New("email address is not verified")

	ErrTokenExpired   = errors.New("link or token has expired")
	ErrTokenInvalid   = errors.New("link or token is invalid")
	ErrSessionRevoked = fmt.Errorf("%w: session was revoked", ErrTokenInvalid)
	ErrTokenUsed      = fmt.Errorf("%w: link was already used", ErrTokenInvalid)

	ErrPasswordReused = errors.New("password was used recently, choose another one")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
