// Package utils provides general-purpose helper utilities used across
// go-blog: typed context keys, JSON request and response helpers, the
// outbound HTTP client, id generation and key derivation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey is the key under which the authenticated user id (int64)
	// is stored by the auth middleware.
	UserIDCtxKey = contextKey("userID")

	// SessionCtxKey is the key under which the verified session token
	// (models.Token) is stored by the auth middleware.
	SessionCtxKey = contextKey("session")
)

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true : value is found and has the correct int64 type
//   - ok == false: value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithSession returns a copy of ctx carrying the verified session token and
// its user id.
func WithSession(ctx context.Context, session models.Token) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, session.UserID)
	return context.WithValue(ctx, SessionCtxKey, session)
}

// GetSessionFromContext retrieves the session token stored by WithSession.
func GetSessionFromContext(ctx context.Context) (models.Token, bool) {
	session, ok := ctx.Value(SessionCtxKey).(models.Token)
	return session, ok
}
