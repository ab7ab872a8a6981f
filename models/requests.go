package models

// RegisterRequest is the payload of a registration call.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload of a login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries a single email address (reset request, resend).
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password for a reset link.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload of an authenticated password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PostRequest creates or updates a post.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentRequest adds a comment, optionally as a reply.
type CommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// AccountUpdateRequest changes the public identity of the current user.
type AccountUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
