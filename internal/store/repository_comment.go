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

type commentRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	return &commentRepository{db: db, logger: logger}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	comment.CreatedAt = time.Now().UTC()

	row, err := queryRow(ctx, r.db, r.db.builder.
		Insert(commentsTable).
		Columns("post_id", "user_id", "parent_id", "content", "created_at").
		Values(comment.PostID, comment.UserID, comment.ParentID, comment.Content, comment.CreatedAt).
		Suffix("RETURNING id"))
	if err != nil {
		return models.Comment{}, err
	}

	if err = row.Scan(&comment.CommentID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*commentRepository.CreateComment").
			Int64("post_id", comment.PostID).
			Msg("error creating comment")
		if isForeignKeyViolation(err) {
			return models.Comment{}, ErrPostNotFound
		}
		return models.Comment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return comment, nil
}

func (r *commentRepository) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	row, err := queryRow(ctx, r.db, r.selectComments().Where(sq.Eq{"c.id": commentID}))
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, ErrCommentNotFound
	}
	if err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return comment, nil
}

func (r *commentRepository) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	rows, err := query(ctx, r.db, r.selectComments().
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC", "c.id ASC"))
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListComments").Int64("post_id", postID).Msg("failed to query comments")
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, scanErr := scanComment(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return comments, nil
}

func (r *commentRepository) selectComments() sq.SelectBuilder {
	return r.db.builder.
		Select(commentColumns...).
		From(commentsTable + " c").
		Join(usersTable + " u ON u.id = c.user_id")
}

func scanComment(row rowScanner) (models.Comment, error) {
	var (
		c        models.Comment
		parentID sql.NullInt64
	)
	if err := row.Scan(&c.CommentID, &c.PostID, &c.UserID, &c.Author, &parentID, &c.Content, &c.CreatedAt); err != nil {
		return models.Comment{}, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.Int64
	}
	return c, nil
}
