package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// constraintViolation describes an integrity error reported by either driver.
type constraintViolation struct {
	// unique is set for unique and primary key violations, foreignKey for
	// foreign key violations.
	unique     bool
	foreignKey bool

	// target is the constraint name (Postgres) or the "table.column" list
	// (SQLite) the driver reported.
	target string
}

// classifyConstraint inspects err for a Postgres or SQLite integrity
// violation. ok is false for every other error.
func classifyConstraint(err error) (v constraintViolation, ok bool) {
	if err == nil {
		return v, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return constraintViolation{unique: true, target: pgErr.ConstraintName}, true
		case pgerrcode.ForeignKeyViolation:
			return constraintViolation{foreignKey: true, target: pgErr.ConstraintName}, true
		}
		return v, false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		// "UNIQUE constraint failed: users.email"
		target := liteErr.Error()
		if i := strings.LastIndex(target, ": "); i >= 0 {
			target = target[i+2:]
		}

		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return constraintViolation{unique: true, target: target}, true
		case sqlite3.ErrConstraintForeignKey:
			return constraintViolation{foreignKey: true, target: target}, true
		}
	}

	return v, false
}

// userConflict maps a unique violation on the users table to
// ErrEmailTaken or ErrUsernameTaken.
func userConflict(err error) error {
	v, ok := classifyConstraint(err)
	if !ok || !v.unique {
		return nil
	}

	switch {
	case strings.Contains(v.target, "email"):
		return ErrEmailTaken
	case strings.Contains(v.target, "username"):
		return ErrUsernameTaken
	default:
		return ErrUserAlreadyExists
	}
}

// isForeignKeyViolation reports whether err is a foreign key violation.
func isForeignKeyViolation(err error) bool {
	v, ok := classifyConstraint(err)
	return ok && v.foreignKey
}
