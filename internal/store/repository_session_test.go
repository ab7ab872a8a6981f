package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeSession(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	exp := time.Date(2026, 5, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO revoked_sessions (jti,user_id,expires_at) VALUES ($1,$2,$3) ON CONFLICT (jti) DO NOTHING")).
		WithArgs("jti-1", int64(3), exp.UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RevokeSession(context.Background(), "jti-1", 3, exp))
}

func TestRevokeSession_Error(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO revoked_sessions").WillReturnError(errors.New("down"))

	require.ErrorIs(t, repo.RevokeSession(context.Background(), "jti-1", 3, time.Now()), ErrExecutingStatement)
}

func TestIsSessionRevoked(t *testing.T) {
	db, mock := newTestDB(t, config.DriverSQLite)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM revoked_sessions WHERE jti = ?")).
		WithArgs("jti-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("jti-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	revoked, err := repo.IsSessionRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsSessionRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestPurgeExpiredSessions(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM revoked_sessions WHERE expires_at < $1")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.PurgeExpiredSessions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
