package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/token"
)

// mapStoreError translates repository errors into service errors. Unknown
// errors are wrapped with msg and returned as is.
func mapStoreError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmailTaken):
		return ErrEmailTaken
	case errors.Is(err, store.ErrUsernameTaken):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrUserAlreadyExists):
		return ErrConflict
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPostNotFound),
		errors.Is(err, store.ErrCommentNotFound),
		errors.Is(err, store.ErrNotificationNotFound),
		errors.Is(err, store.ErrAvatarNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// mapTokenError keeps expired and invalid tokens apart.
func mapTokenError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, token.ErrExpired):
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}
