package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAvatarStorage(t *testing.T) {
	s, err := newAvatarStorage(context.Background(), config.Avatars{Driver: config.AvatarDriverFile, Dir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &avatarFileStorage{}, s)

	_, err = newAvatarStorage(context.Background(), config.Avatars{Driver: "ftp"}, logger.Nop())
	require.Error(t, err)
}

func TestNewStorages_WiresRepositories(t *testing.T) {
	db, _ := newPostgresTestDB(t)

	s := newStorages(db, nil, logger.Nop())
	assert.NotNil(t, s.UserRepository)
	assert.NotNil(t, s.SessionRepository)
	assert.NotNil(t, s.EventRepository)
	assert.NotNil(t, s.PostRepository)
	assert.NotNil(t, s.CommentRepository)
	assert.NotNil(t, s.LikeRepository)
	assert.NotNil(t, s.NotificationRepository)
	assert.Same(t, db, s.DB)
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(context.Background(), config.DB{Driver: "mysql"}, logger.Nop())
	require.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:instance/site.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("instance/site.db"))
}
