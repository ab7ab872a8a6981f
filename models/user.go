package models

import (
	"strings"
	"time"
)

// DefaultImageFile is the avatar assigned to every account until the user
// uploads a picture of their own.
const DefaultImageFile = "default.jpg"

// User represents a registered blog account.
// PasswordHash is a salted one-way hash and is never serialized.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique public handle of the user.
	Username string `json:"username"`

	// Email is the unique, lower-cased address used for login and for
	// verification and reset mails.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the current password.
	PasswordHash string `json:"-"`

	// ImageFile is the storage name of the user's avatar.
	ImageFile string `json:"image_file"`

	// Verified reports whether the email address has been confirmed.
	Verified bool `json:"verified"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PasswordHistoryEntry is one append-only record of a password the user has
// set. Entries are created on registration and on every password change.
type PasswordHistoryEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PasswordHistoryEntry model.
func (p PasswordHistoryEntry) TableName() string {
	return "password_history"
}

// NormalizeEmail returns the canonical form emails are stored and looked up
// in: trimmed and lower case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
