package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the SQL implementation of [UserRepository] for both the
// Postgres and the SQLite dialect. It owns the "users" and
// "password_history" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext].
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user and its first password history entry in a
// single transaction and returns the user with its assigned id.
//
// Unique violations are reported as [ErrEmailTaken] or [ErrUsernameTaken].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.CreatedAt = time.Now().UTC()
	if user.ImageFile == "" {
		user.ImageFile = models.DefaultImageFile
	}

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		row, err := queryRow(ctx, tx, r.db.builder.
			Insert(usersTable).
			Columns("username", "email", "password_hash", "image_file", "verified", "created_at").
			Values(user.Username, user.Email, user.PasswordHash, user.ImageFile, user.Verified, user.CreatedAt).
			Suffix("RETURNING id"))
		if err != nil {
			return err
		}

		if err = row.Scan(&user.UserID); err != nil {
			if conflict := userConflict(err); conflict != nil {
				return conflict
			}
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		return r.appendHistory(ctx, tx, user.UserID, user.PasswordHash, user.CreatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByID retrieves a user by primary key.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"id": userID})
}

// FindUserByEmail retrieves a user by exact email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

// FindUserByUsername retrieves a user by exact username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", sq.Eq{"username": username})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	row, err := queryRow(ctx, r.db, r.db.builder.Select(userColumns...).From(usersTable).Where(where))
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return models.User{}, err
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdatePassword replaces the password hash and records it in the history in
// one transaction. When retain > 0, history rows beyond the newest retain are
// pruned in the same transaction.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string, retain int) error {
	log := logger.FromContext(ctx)

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := exec(ctx, tx, r.db.builder.
			Update(usersTable).
			Set("password_hash", passwordHash).
			Where(sq.Eq{"id": userID}))
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrUserNotFound
		}

		if err = r.appendHistory(ctx, tx, userID, passwordHash, time.Now().UTC()); err != nil {
			return err
		}

		if retain > 0 {
			return r.pruneHistory(ctx, tx, userID, retain)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Int64("user_id", userID).Msg("error updating password")
		return err
	}

	return nil
}

// SetVerified marks the user as verified.
func (r *userRepository) SetVerified(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	res, err := exec(ctx, r.db, r.db.builder.
		Update(usersTable).
		Set("verified", true).
		Where(sq.Eq{"id": userID}))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetVerified").Int64("user_id", userID).Msg("error verifying user")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// AppendPasswordHistory records passwordHash for userID.
func (r *userRepository) AppendPasswordHistory(ctx context.Context, userID int64, passwordHash string) error {
	if err := r.appendHistory(ctx, r.db, userID, passwordHash, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.AppendPasswordHistory").
			Int64("user_id", userID).
			Msg("error appending password history")
		return err
	}
	return nil
}

// RecentPasswordHashes returns the newest limit history hashes of userID,
// most recent first.
func (r *userRepository) RecentPasswordHashes(ctx context.Context, userID int64, limit int) ([]string, error) {
	log := logger.FromContext(ctx)
	if limit <= 0 {
		return []string{}, nil
	}

	rows, err := query(ctx, r.db, r.db.builder.
		Select("password_hash").
		From(passwordHistoryTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RecentPasswordHashes").Int64("user_id", userID).Msg("failed to query history")
		return nil, err
	}
	defer rows.Close()

	hashes := make([]string, 0, limit)
	for rows.Next() {
		var hash string
		if err = rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		hashes = append(hashes, hash)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return hashes, nil
}

// PasswordChangedAt returns the creation time of the newest history entry of
// userID, or [ErrUserNotFound] when the user has no history.
func (r *userRepository) PasswordChangedAt(ctx context.Context, userID int64) (time.Time, error) {
	row, err := queryRow(ctx, r.db, r.db.builder.
		Select("created_at").
		From(passwordHistoryTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1))
	if err != nil {
		return time.Time{}, err
	}

	var changedAt time.Time
	err = row.Scan(&changedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return time.Time{}, ErrUserNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.PasswordChangedAt").Int64("user_id", userID).Msg("error reading password change time")
		return time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return changedAt, nil
}

// UpdateProfile sets username and email of userID and returns the stored
// row. A changed email clears the verified flag within the same UPDATE, so a
// concurrent verification of the old address is never overwritten.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, username, email string) (models.User, error) {
	return r.updateUser(ctx, "*userRepository.UpdateProfile", userID, r.db.builder.
		Update(usersTable).
		Set("username", username).
		Set("email", email).
		Set("verified", sq.Expr("CASE WHEN email = ? THEN verified ELSE FALSE END", email)))
}

// SetImageFile updates only the image_file column of userID.
func (r *userRepository) SetImageFile(ctx context.Context, userID int64, imageFile string) (models.User, error) {
	return r.updateUser(ctx, "*userRepository.SetImageFile", userID, r.db.builder.
		Update(usersTable).
		Set("image_file", imageFile))
}

func (r *userRepository) updateUser(ctx context.Context, funcName string, userID int64, update sq.UpdateBuilder) (models.User, error) {
	log := logger.FromContext(ctx)

	row, err := queryRow(ctx, r.db, update.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING "+joinColumns(userColumns)))
	if err != nil {
		return models.User{}, err
	}

	updated, err := scanUser(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil:
		if conflict := userConflict(err); conflict != nil {
			return models.User{}, conflict
		}
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

func (r *userRepository) appendHistory(ctx context.Context, q queryer, userID int64, passwordHash string, at time.Time) error {
	_, err := exec(ctx, q, r.db.builder.
		Insert(passwordHistoryTable).
		Columns("user_id", "password_hash", "created_at").
		Values(userID, passwordHash, at))
	return err
}

func (r *userRepository) pruneHistory(ctx context.Context, q queryer, userID int64, retain int) error {
	_, err := exec(ctx, q, r.db.builder.
		Delete(passwordHistoryTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Expr(
			"id NOT IN (SELECT id FROM "+passwordHistoryTable+" WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?)",
			userID, retain,
		)))
	return err
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.ImageFile, &u.Verified, &u.CreatedAt)
	return u, err
}
