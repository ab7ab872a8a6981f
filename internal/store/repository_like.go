package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	sq "github.com/Masterminds/squirrel"
)

type likeRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewLikeRepository(db *DB, logger *logger.Logger) LikeRepository {
	return &likeRepository{db: db, logger: logger}
}

// ToggleLike flips userID's like on postID inside a transaction and returns
// the new state with the updated count.
func (r *likeRepository) ToggleLike(ctx context.Context, postID, userID int64) (models.LikeState, error) {
	var state models.LikeState

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		key := sq.Eq{"post_id": postID, "user_id": userID}

		res, err := exec(ctx, tx, r.db.builder.Delete(likesTable).Where(key))
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if removed == 0 {
			if _, err = exec(ctx, tx, r.db.builder.
				Insert(likesTable).
				Columns("post_id", "user_id", "created_at").
				Values(postID, userID, time.Now().UTC())); err != nil {
				if isForeignKeyViolation(err) {
					return ErrPostNotFound
				}
				return err
			}
			state.Liked = true
		}

		state.Likes, err = r.countLikes(ctx, tx, postID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*likeRepository.ToggleLike").
			Int64("post_id", postID).
			Int64("user_id", userID).
			Msg("error toggling like")
		return models.LikeState{}, err
	}

	return state, nil
}

func (r *likeRepository) CountLikes(ctx context.Context, postID int64) (int64, error) {
	return r.countLikes(ctx, r.db, postID)
}

func (r *likeRepository) countLikes(ctx context.Context, q queryer, postID int64) (int64, error) {
	row, err := queryRow(ctx, q, r.db.builder.
		Select("COUNT(*)").
		From(likesTable).
		Where(sq.Eq{"post_id": postID}))
	if err != nil {
		return 0, err
	}

	var n int64
	if err = row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return n, nil
}
