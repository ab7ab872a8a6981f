// Package validators checks request payloads before they reach storage:
// username and email shape, password length limits, post and comment text.
package validators

import "context"

// Validator checks v. When fields are given only those fields are checked,
// so a partial account update does not fail on fields it leaves untouched.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
