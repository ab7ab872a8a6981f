package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commentRowColumns = []string{"id", "post_id", "user_id", "username", "parent_id", "content", "created_at"}

func TestCreateComment(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	parent := int64(4)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (post_id,user_id,parent_id,content,created_at) VALUES ($1,$2,$3,$4,$5) RETURNING id")).
		WithArgs(int64(2), int64(1), int64(4), "nice", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	c, err := repo.CreateComment(context.Background(), models.Comment{PostID: 2, UserID: 1, ParentID: &parent, Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.CommentID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCreateComment_MissingPost(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO comments").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation, "comments_post_id_fkey"))

	_, err := repo.CreateComment(context.Background(), models.Comment{PostID: 9, UserID: 1, Content: "x"})
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetComment(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM comments c JOIN users u ON u.id = c.user_id WHERE c.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).AddRow(int64(5), int64(2), int64(1), "alice", nil, "hi", now))
	mock.ExpectQuery("FROM comments c").
		WithArgs(int64(6)).
		WillReturnError(sql.ErrNoRows)

	c, err := repo.GetComment(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, "alice", c.Author)

	_, err = repo.GetComment(context.Background(), 6)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestListComments(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.post_id = $1 ORDER BY c.created_at ASC, c.id ASC")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(int64(1), int64(2), int64(1), "alice", nil, "root", now).
			AddRow(int64(2), int64(2), int64(3), "bob", int64(1), "reply", now.Add(time.Second)))

	comments, err := repo.ListComments(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.NotNil(t, comments[1].ParentID)
	assert.Equal(t, int64(1), *comments[1].ParentID)
}
