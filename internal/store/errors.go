package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when a user row would violate the
	// username or email uniqueness constraint. ErrEmailTaken and
	// ErrUsernameTaken both wrap it.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = fmt.Errorf("%w: email is taken", ErrUserAlreadyExists)

	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = fmt.Errorf("%w: username is taken", ErrUserAlreadyExists)

	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("no user was found")

	// ErrPostNotFound is returned when a post id does not exist.
	ErrPostNotFound = errors.New("post was not found")

	// ErrCommentNotFound is returned when a comment id does not exist on the
	// post it was looked up for.
	ErrCommentNotFound = errors.New("comment was not found")

	// ErrNotificationNotFound is returned when a notification does not exist
	// or belongs to another user.
	ErrNotificationNotFound = errors.New("notification was not found")

	// ErrAvatarNotFound is returned when no avatar object has the given name.
	ErrAvatarNotFound = errors.New("avatar was not found")

	// ErrUnknownTable is returned by the introspector for table names that are
	// not part of the schema.
	ErrUnknownTable = errors.New("unknown table")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
