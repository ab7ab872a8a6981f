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

// postRepository is the SQL implementation of [PostRepository]. Reads join
// "users" to fill in the author's username.
type postRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	post.DatePosted, post.UpdatedAt = now, now

	row, err := queryRow(ctx, r.db, r.db.builder.
		Insert(postsTable).
		Columns("title", "content", "user_id", "date_posted", "updated_at").
		Values(post.Title, post.Content, post.UserID, post.DatePosted, post.UpdatedAt).
		Suffix("RETURNING id"))
	if err != nil {
		return models.Post{}, err
	}

	if err = row.Scan(&post.PostID); err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Int64("user_id", post.UserID).Msg("error creating post")
		if isForeignKeyViolation(err) {
			return models.Post{}, ErrUserNotFound
		}
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return post, nil
}

func (r *postRepository) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	row, err := queryRow(ctx, r.db, r.selectPosts().Where(sq.Eq{"p.id": postID}))
	if err != nil {
		return models.Post{}, err
	}

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.GetPost").Int64("post_id", postID).Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return post, nil
}

func (r *postRepository) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	return r.listPosts(ctx, "*postRepository.ListPosts", nil, limit, offset)
}

func (r *postRepository) ListPostsByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Post, int64, error) {
	return r.listPosts(ctx, "*postRepository.ListPostsByUser", sq.Eq{"p.user_id": userID}, limit, offset)
}

func (r *postRepository) listPosts(ctx context.Context, funcName string, where sq.Sqlizer, limit, offset int) ([]models.Post, int64, error) {
	log := logger.FromContext(ctx)

	count := r.db.builder.Select("COUNT(*)").From(postsTable + " p")
	list := r.selectPosts().
		OrderBy("p.date_posted DESC", "p.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if where != nil {
		count = count.Where(where)
		list = list.Where(where)
	}

	row, err := queryRow(ctx, r.db, count)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err = row.Scan(&total); err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to count posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rows, err := query(ctx, r.db, list)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query posts")
		return nil, 0, err
	}
	defer rows.Close()

	posts := make([]models.Post, 0, limit)
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan post row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, total, nil
}

// UpdatePost writes title and content and bumps updated_at.
func (r *postRepository) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	res, err := exec(ctx, r.db, r.db.builder.
		Update(postsTable).
		Set("title", post.Title).
		Set("content", post.Content).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": post.PostID}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.UpdatePost").Int64("post_id", post.PostID).Msg("error updating post")
		return models.Post{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Post{}, ErrPostNotFound
	}

	return r.GetPost(ctx, post.PostID)
}

// DeletePost removes the post; comments, likes and notifications cascade.
func (r *postRepository) DeletePost(ctx context.Context, postID int64) error {
	res, err := exec(ctx, r.db, r.db.builder.Delete(postsTable).Where(sq.Eq{"id": postID}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.DeletePost").Int64("post_id", postID).Msg("error deleting post")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *postRepository) selectPosts() sq.SelectBuilder {
	return r.db.builder.
		Select(postColumns...).
		From(postsTable + " p").
		Join(usersTable + " u ON u.id = p.user_id")
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.PostID, &p.Title, &p.Content, &p.UserID, &p.Author, &p.DatePosted, &p.UpdatedAt)
	return p, err
}
