package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername   = errors.New("username must be between 2 and 20 characters")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrEmptyTitle        = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title must be at most 100 characters")
	ErrEmptyContent      = errors.New("content is required")
	ErrInvalidParentID   = errors.New("invalid parent comment id")
	ErrEmptyToken        = errors.New("token is required")
	ErrSamePassword      = errors.New("new password must differ from the current one")
	ErrNothingToValidate = errors.New("nothing to validate")
)
