package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldTitle           = "title"
	FieldContent         = "content"
	FieldParentID        = "parent_id"
)

// Limits applied by BlogValidator.
const (
	UsernameMinLength = 2
	UsernameMaxLength = 20
	PasswordMinLength = 8
	// PasswordMaxBytes is the longest input bcrypt accepts.
	PasswordMaxBytes = 72
	TitleMaxLength   = 100
)

// BlogValidator implements [Validator] for every request payload of the API.
// Both value and pointer forms are accepted. Lengths are counted in runes
// after trimming surrounding spaces, except the password limits.
type BlogValidator struct{}

// NewBlogValidator constructs a BlogValidator and returns it as a [Validator].
func NewBlogValidator() Validator {
	return &BlogValidator{}
}

// Validate dispatches on the dynamic type of obj. Without fields every
// field of the payload is validated. Returns ErrUnsupportedType for unknown
// payloads and the first failing rule otherwise.
func (v *BlogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateFields(fields, []string{FieldUsername, FieldEmail, FieldPassword}, func(f string) error {
			return v.validateCredentials(f, value.Username, value.Email, value.Password)
		})
	case *models.RegisterRequest:
		return v.Validate(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateFields(fields, []string{FieldEmail}, func(f string) error {
			return v.validateCredentials(f, "", value.Email, value.Password)
		})
	case *models.LoginRequest:
		return v.Validate(ctx, *value, fields...)

	case models.EmailRequest:
		return v.validateFields(fields, []string{FieldEmail}, func(f string) error {
			return v.validateCredentials(f, "", value.Email, "")
		})
	case *models.EmailRequest:
		return v.Validate(ctx, *value, fields...)

	case models.ResetPasswordRequest:
		return v.validateFields(fields, []string{FieldPassword}, func(f string) error {
			return v.validateCredentials(f, "", "", value.Password)
		})
	case *models.ResetPasswordRequest:
		return v.Validate(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.Validate(ctx, *value, fields...)

	case models.AccountUpdateRequest:
		return v.validateFields(fields, []string{FieldUsername, FieldEmail}, func(f string) error {
			return v.validateCredentials(f, value.Username, value.Email, "")
		})
	case *models.AccountUpdateRequest:
		return v.Validate(ctx, *value, fields...)

	case models.PostRequest:
		return v.validatePost(value, fields...)
	case *models.PostRequest:
		return v.Validate(ctx, *value, fields...)

	case models.CommentRequest:
		return v.validateComment(value, fields...)
	case *models.CommentRequest:
		return v.Validate(ctx, *value, fields...)

	case nil:
		return ErrNothingToValidate
	default:
		return ErrUnsupportedType
	}
}

func (v *BlogValidator) validateFields(fields, defaults []string, check func(string) error) error {
	if len(fields) == 0 {
		fields = defaults
	}

	for _, f := range fields {
		if err := check(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *BlogValidator) validateCredentials(field, username, email, password string) error {
	switch field {
	case FieldUsername:
		return ValidateUsername(username)
	case FieldEmail:
		return ValidateEmail(email)
	case FieldPassword:
		return ValidatePassword(password)
	default:
		return ErrUnknownField
	}
}

func (v *BlogValidator) validateChangePassword(req models.ChangePasswordRequest, fields ...string) error {
	return v.validateFields(fields, []string{FieldCurrentPassword, FieldNewPassword}, func(f string) error {
		switch f {
		case FieldCurrentPassword:
			if req.CurrentPassword == "" {
				return ErrPasswordTooShort
			}
		case FieldNewPassword:
			if err := ValidatePassword(req.NewPassword); err != nil {
				return err
			}
			if req.NewPassword == req.CurrentPassword {
				return ErrSamePassword
			}
		default:
			return ErrUnknownField
		}
		return nil
	})
}

func (v *BlogValidator) validatePost(req models.PostRequest, fields ...string) error {
	return v.validateFields(fields, []string{FieldTitle, FieldContent}, func(f string) error {
		switch f {
		case FieldTitle:
			title := strings.TrimSpace(req.Title)
			if title == "" {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(title) > TitleMaxLength {
				return ErrTitleTooLong
			}
		case FieldContent:
			if strings.TrimSpace(req.Content) == "" {
				return ErrEmptyContent
			}
		default:
			return ErrUnknownField
		}
		return nil
	})
}

func (v *BlogValidator) validateComment(req models.CommentRequest, fields ...string) error {
	return v.validateFields(fields, []string{FieldContent, FieldParentID}, func(f string) error {
		switch f {
		case FieldContent:
			if strings.TrimSpace(req.Content) == "" {
				return ErrEmptyContent
			}
		case FieldParentID:
			if req.ParentID != nil && *req.ParentID <= 0 {
				return ErrInvalidParentID
			}
		default:
			return ErrUnknownField
		}
		return nil
	})
}

// ValidateUsername checks the username length.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	if n < UsernameMinLength || n > UsernameMaxLength {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateEmail accepts a bare address ("a@b.c"), rejecting display names and
// addresses without a dot in the domain.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	at := strings.LastIndexByte(email, '@')
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks the password length bounds.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return ErrPasswordTooShort
	}
	if len(password) > PasswordMaxBytes {
		return ErrPasswordTooLong
	}
	return nil
}
