package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/logger"
	sq "github.com/Masterminds/squirrel"
)

// sessionRepository keeps the ids of logged-out session tokens until they
// would have expired on their own.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

// RevokeSession adds tokenID to the denylist. Revoking twice is a no-op.
func (r *sessionRepository) RevokeSession(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	_, err := exec(ctx, r.db, r.db.builder.
		Insert(revokedSessionsTable).
		Columns("jti", "user_id", "expires_at").
		Values(tokenID, userID, expiresAt.UTC()).
		Suffix("ON CONFLICT (jti) DO NOTHING"))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sessionRepository.RevokeSession").
			Int64("user_id", userID).
			Msg("error revoking session")
		return err
	}

	return nil
}

func (r *sessionRepository) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	row, err := queryRow(ctx, r.db, r.db.builder.
		Select("COUNT(*)").
		From(revokedSessionsTable).
		Where(sq.Eq{"jti": tokenID}))
	if err != nil {
		return false, err
	}

	var n int64
	if err = row.Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.IsSessionRevoked").Msg("error checking denylist")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return n > 0, nil
}

func (r *sessionRepository) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := exec(ctx, r.db, r.db.builder.
		Delete(revokedSessionsTable).
		Where(sq.Lt{"expires_at": now.UTC()}))
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}
