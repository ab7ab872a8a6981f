package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
)

// Storages groups every repository the service layer needs.
type Storages struct {
	DB *DB

	UserRepository         UserRepository
	SessionRepository      SessionRepository
	EventRepository        EventRepository
	PostRepository         PostRepository
	CommentRepository      CommentRepository
	LikeRepository         LikeRepository
	NotificationRepository NotificationRepository
	AvatarStorage          AvatarStorage
}

// NewStorages connects to the configured database, applies migrations and
// builds every repository plus the configured avatar backend.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	avatars, err := newAvatarStorage(ctx, cfg.Avatars, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return newStorages(db, avatars, log), nil
}

func newStorages(db *DB, avatars AvatarStorage, log *logger.Logger) *Storages {
	return &Storages{
		DB:                     db,
		UserRepository:         NewUserRepository(db, log),
		SessionRepository:      NewSessionRepository(db, log),
		EventRepository:        NewEventRepository(db, log),
		PostRepository:         NewPostRepository(db, log),
		CommentRepository:      NewCommentRepository(db, log),
		LikeRepository:         NewLikeRepository(db, log),
		NotificationRepository: NewNotificationRepository(db, log),
		AvatarStorage:          avatars,
	}
}

func newAvatarStorage(ctx context.Context, cfg config.Avatars, log *logger.Logger) (AvatarStorage, error) {
	switch cfg.Driver {
	case config.AvatarDriverS3:
		return NewAvatarS3Storage(ctx, cfg, log)
	case config.AvatarDriverFile:
		return NewAvatarFileStorage(cfg.Dir, log)
	default:
		return nil, fmt.Errorf("unsupported avatar driver %q", cfg.Driver)
	}
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
