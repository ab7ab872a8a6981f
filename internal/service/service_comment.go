package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

type commentService struct {
	comments store.CommentRepository
	posts    store.PostRepository

	validator validators.Validator
	events    *eventRecorder
	notifier  *notifier

	logger *logger.Logger
}

func NewCommentService(storages *store.Storages, logger *logger.Logger) CommentService {
	return &commentService{
		comments:  storages.CommentRepository,
		posts:     storages.PostRepository,
		validator: validators.NewBlogValidator(),
		events:    newEventRecorder(storages.EventRepository),
		notifier:  newNotifier(storages.NotificationRepository),
		logger:    logger,
	}
}

// AddComment stores a comment or, when req.ParentID is set, a reply to a
// comment on the same post.
//
// The author of the parent comment is notified of a reply and the author of
// the post of a comment. Someone who is both gets a single reply
// notification, and nobody is notified of their own comment.
func (s *commentService) AddComment(ctx context.Context, userID, postID int64, req models.CommentRequest) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*commentService.AddComment").Int64("post_id", postID).Msg("post search failed")
		return models.Comment{}, mapStoreError(err, "post search failed")
	}

	var parent *models.Comment
	if req.ParentID != nil {
		found, err := s.comments.GetComment(ctx, *req.ParentID)
		switch {
		case errors.Is(err, store.ErrCommentNotFound) || (err == nil && found.PostID != postID):
			log.Warn().Str("func", "*commentService.AddComment").Int64("parent_id", *req.ParentID).Msg("parent comment is not on this post")
			return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidParentID)
		case err != nil:
			log.Err(err).Str("func", "*commentService.AddComment").Int64("parent_id", *req.ParentID).Msg("parent comment search failed")
			return models.Comment{}, mapStoreError(err, "parent comment search failed")
		}
		parent = &found
	}

	comment, err := s.comments.CreateComment(ctx, models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		log.Err(err).Str("func", "*commentService.AddComment").Int64("post_id", postID).Msg("comment creation failed")
		return models.Comment{}, mapStoreError(err, "comment creation failed")
	}

	s.events.record(ctx, userID, models.EventCommentAdded, fmt.Sprintf("comment %d on post %d", comment.CommentID, postID))

	commentID := comment.CommentID
	if parent != nil {
		s.notifier.notify(ctx, models.Notification{
			UserID:    parent.UserID,
			ActorID:   userID,
			Kind:      models.NotificationReply,
			PostID:    postID,
			CommentID: &commentID,
		})
	}
	if parent == nil || parent.UserID != post.UserID {
		s.notifier.notify(ctx, models.Notification{
			UserID:    post.UserID,
			ActorID:   userID,
			Kind:      models.NotificationComment,
			PostID:    postID,
			CommentID: &commentID,
		})
	}

	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID int64) ([]*models.CommentNode, error) {
	log := logger.FromContext(ctx)

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		log.Err(err).Str("func", "*commentService.ListComments").Int64("post_id", postID).Msg("post search failed")
		return nil, mapStoreError(err, "post search failed")
	}

	comments, err := s.comments.ListComments(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*commentService.ListComments").Int64("post_id", postID).Msg("listing comments failed")
		return nil, mapStoreError(err, "listing comments failed")
	}

	return models.BuildCommentThread(comments), nil
}
