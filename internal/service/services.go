package service

import (
	"fmt"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/crypto"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/media"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/token"
)

type Services struct {
	AuthService         AuthService
	PostService         PostService
	CommentService      CommentService
	LikeService         LikeService
	NotificationService NotificationService
	EventService        EventService
	AccountService      AccountService
	AppInfoService      AppInfoService
}

// NewServices builds every service on top of storages. Tokens are minted by
// a codec built from cfg.Auth and passwords hashed with bcrypt at
// cfg.Auth.BcryptCost.
func NewServices(storages *store.Storages, mailer adapter.Mailer, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	codec, err := token.NewCodec(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	return newServices(storages, codec, crypto.NewBcryptHasher(cfg.Auth.BcryptCost), mailer, cfg, logger)
}

func newServices(
	storages *store.Storages,
	codec TokenCodec,
	hasher crypto.PasswordHasher,
	mailer adapter.Mailer,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	authService, err := NewAuthService(storages, codec, hasher, mailer, cfg, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:         authService,
		PostService:         NewPostService(storages, logger),
		CommentService:      NewCommentService(storages, logger),
		LikeService:         NewLikeService(storages, logger),
		NotificationService: NewNotificationService(storages.NotificationRepository, logger),
		EventService:        NewEventService(storages.EventRepository, logger),
		AccountService:      NewAccountService(storages, codec, mailer, media.NewThumbnailProcessor(), cfg, logger),
		AppInfoService:      appInfoService,
	}, nil
}
