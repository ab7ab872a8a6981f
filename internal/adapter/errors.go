package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("relay rejected the message")
	ErrUnauthorized        = errors.New("relay unauthorized")
	ErrForbidden           = errors.New("relay forbidden")
	ErrNotFound            = errors.New("relay endpoint not found")
	ErrRateLimited         = errors.New("relay rate limited")
	ErrBadGateway          = errors.New("relay unavailable")
	ErrInternalServerError = errors.New("relay internal error")

	// ErrNoRecipient is returned when a message has an empty To address.
	ErrNoRecipient = errors.New("message has no recipient")

	// ErrUnsupportedDriver is returned by NewMailer for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported mail driver")
)
