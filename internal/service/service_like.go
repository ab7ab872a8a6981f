package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
)

type likeService struct {
	likes store.LikeRepository
	posts store.PostRepository

	events   *eventRecorder
	notifier *notifier

	logger *logger.Logger
}

func NewLikeService(storages *store.Storages, logger *logger.Logger) LikeService {
	return &likeService{
		likes:    storages.LikeRepository,
		posts:    storages.PostRepository,
		events:   newEventRecorder(storages.EventRepository),
		notifier: newNotifier(storages.NotificationRepository),
		logger:   logger,
	}
}

// ToggleLike likes the post, or takes the like back when userID already
// likes it. The post author is notified of new likes.
func (s *likeService) ToggleLike(ctx context.Context, userID, postID int64) (models.LikeState, error) {
	log := logger.FromContext(ctx)

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*likeService.ToggleLike").Int64("post_id", postID).Msg("post search failed")
		return models.LikeState{}, mapStoreError(err, "post search failed")
	}

	state, err := s.likes.ToggleLike(ctx, postID, userID)
	if err != nil {
		log.Err(err).Str("func", "*likeService.ToggleLike").Int64("post_id", postID).Msg("toggling like failed")
		return models.LikeState{}, mapStoreError(err, "toggling like failed")
	}

	s.events.record(ctx, userID, models.EventLikeToggled, fmt.Sprintf("post %d liked=%t", postID, state.Liked))

	if state.Liked {
		s.notifier.notify(ctx, models.Notification{
			UserID:  post.UserID,
			ActorID: userID,
			Kind:    models.NotificationLike,
			PostID:  postID,
		})
	}

	return state, nil
}
