package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/media"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

// avatarNameBytes is the amount of randomness in a stored avatar name.
const avatarNameBytes = 8

type accountService struct {
	users   store.UserRepository
	avatars store.AvatarStorage

	processor media.Processor
	validator validators.Validator
	mail      *linkMailer

	logger *logger.Logger
}

func NewAccountService(
	storages *store.Storages,
	codec TokenCodec,
	mailer adapter.Mailer,
	processor media.Processor,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		users:     storages.UserRepository,
		avatars:   storages.AvatarStorage,
		processor: processor,
		validator: validators.NewBlogValidator(),
		mail:      newLinkMailer(codec, mailer, cfg, newEventRecorder(storages.EventRepository)),
		logger:    logger,
	}
}

func (s *accountService) GetAccount(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.GetAccount").Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, mapStoreError(err, "user search by id failed")
	}
	return user, nil
}

// UpdateAccount changes username and email. A new email address has to be
// verified again, so the account loses its verified flag and a fresh
// verification link is mailed.
func (s *accountService) UpdateAccount(ctx context.Context, userID int64, req models.AccountUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.GetAccount(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := models.NormalizeEmail(req.Email)

	if err = checkIdentityAvailable(ctx, s.users, username, email, userID); err != nil {
		log.Err(err).Str("func", "*accountService.UpdateAccount").Int64("user_id", userID).Msg("identity is not available")
		return models.User{}, err
	}

	emailChanged := email != user.Email

	updated, err := s.users.UpdateProfile(ctx, userID, username, email)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpdateAccount").Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, mapStoreError(err, "profile update failed")
	}

	if emailChanged {
		if err = s.mail.sendVerification(ctx, updated); err != nil {
			log.Warn().Err(err).Str("func", "*accountService.UpdateAccount").Int64("user_id", userID).Msg("verification mail was not sent")
		}
	}

	return updated, nil
}

// UploadAvatar thumbnails the picture, stores it under a random name and
// points the account at it. The previous picture is removed unless it is
// the default one.
func (s *accountService) UploadAvatar(ctx context.Context, userID int64, upload media.Upload) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.GetAccount(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	thumb, err := s.processor.Process(ctx, upload, media.AvatarSize)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UploadAvatar").Str("file_name", upload.FileName).Msg("picture processing failed")
		if errors.Is(err, media.ErrEmptyImage) || errors.Is(err, media.ErrUnsupportedImage) || errors.Is(err, media.ErrImageTooLarge) {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return models.User{}, fmt.Errorf("picture processing failed: %w", err)
	}

	random, err := utils.RandomHex(avatarNameBytes)
	if err != nil {
		return models.User{}, fmt.Errorf("error generating avatar name: %w", err)
	}
	name := random + thumb.Ext

	if err = s.avatars.SaveAvatar(ctx, name, thumb.ContentType, thumb.Bytes); err != nil {
		log.Err(err).Str("func", "*accountService.UploadAvatar").Str("name", name).Msg("saving avatar failed")
		return models.User{}, fmt.Errorf("saving avatar failed: %w", err)
	}

	previous := user.ImageFile

	updated, err := s.users.SetImageFile(ctx, userID, name)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UploadAvatar").Int64("user_id", userID).Msg("avatar update failed")
		s.removeAvatar(ctx, name)
		return models.User{}, mapStoreError(err, "avatar update failed")
	}

	if previous != "" && previous != models.DefaultImageFile {
		s.removeAvatar(ctx, previous)
	}

	return updated, nil
}

func (s *accountService) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	body, contentType, err := s.avatars.OpenAvatar(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.OpenAvatar").Str("name", name).Msg("opening avatar failed")
		return nil, "", mapStoreError(err, "opening avatar failed")
	}
	return body, contentType, nil
}

func (s *accountService) removeAvatar(ctx context.Context, name string) {
	if err := s.avatars.DeleteAvatar(ctx, name); err != nil && !errors.Is(err, store.ErrAvatarNotFound) {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*accountService.removeAvatar").Str("name", name).Msg("avatar was not removed")
	}
}
