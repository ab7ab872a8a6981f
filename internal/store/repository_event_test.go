package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveEvent(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	userID := int64(3)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_events (user_id,kind,detail,created_at) VALUES ($1,$2,$3,$4)")).
		WithArgs(int64(3), "login", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO user_events").
		WithArgs(nil, "login_failed", "ghost@x.io", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	require.NoError(t, repo.SaveEvent(context.Background(), models.UserEvent{UserID: &userID, Kind: models.EventLogin}))
	require.NoError(t, repo.SaveEvent(context.Background(), models.UserEvent{Kind: models.EventLoginFailed, Detail: "ghost@x.io"}))
}

func TestListEvents(t *testing.T) {
	db, mock := newPostgresTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, kind, detail, created_at FROM user_events WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 2")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(int64(2), int64(3), "logout", "", now).
			AddRow(int64(1), int64(3), "login", "", now.Add(-time.Minute)))

	events, err := repo.ListEvents(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventLogout, events[0].Kind)
	require.NotNil(t, events[0].UserID)
	assert.Equal(t, int64(3), *events[0].UserID)
}
