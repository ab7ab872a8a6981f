package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

// PostsPerPage is the page size of every post listing.
const PostsPerPage = 5

type postService struct {
	posts    store.PostRepository
	comments store.CommentRepository
	likes    store.LikeRepository
	users    store.UserRepository

	validator validators.Validator
	events    *eventRecorder

	logger *logger.Logger
}

func NewPostService(storages *store.Storages, logger *logger.Logger) PostService {
	return &postService{
		posts:     storages.PostRepository,
		comments:  storages.CommentRepository,
		likes:     storages.LikeRepository,
		users:     storages.UserRepository,
		validator: validators.NewBlogValidator(),
		events:    newEventRecorder(storages.EventRepository),
		logger:    logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID int64, req models.PostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	post, err := s.posts.CreatePost(ctx, models.Post{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		UserID:  userID,
	})
	if err != nil {
		log.Err(err).Str("func", "*postService.CreatePost").Int64("user_id", userID).Msg("post creation failed")
		return models.Post{}, mapStoreError(err, "post creation failed")
	}

	s.events.record(ctx, userID, models.EventPostCreated, fmt.Sprintf("post %d", post.PostID))

	return post, nil
}

// GetPost returns a post with its like count and comment thread.
func (s *postService) GetPost(ctx context.Context, postID int64) (models.PostDetail, error) {
	log := logger.FromContext(ctx)

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*postService.GetPost").Int64("post_id", postID).Msg("post search failed")
		return models.PostDetail{}, mapStoreError(err, "post search failed")
	}

	likes, err := s.likes.CountLikes(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*postService.GetPost").Int64("post_id", postID).Msg("counting likes failed")
		return models.PostDetail{}, mapStoreError(err, "counting likes failed")
	}

	comments, err := s.comments.ListComments(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*postService.GetPost").Int64("post_id", postID).Msg("listing comments failed")
		return models.PostDetail{}, mapStoreError(err, "listing comments failed")
	}

	return models.PostDetail{
		Post:     post,
		Likes:    likes,
		Comments: models.BuildCommentThread(comments),
	}, nil
}

// ListPosts returns one page of all posts, newest first. Pages start at 1;
// smaller values are treated as 1.
func (s *postService) ListPosts(ctx context.Context, page int) (models.PostsPage, error) {
	page = normalizePage(page)

	posts, total, err := s.posts.ListPosts(ctx, PostsPerPage, (page-1)*PostsPerPage)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.ListPosts").Int("page", page).Msg("listing posts failed")
		return models.PostsPage{}, mapStoreError(err, "listing posts failed")
	}

	return newPostsPage(posts, page, total), nil
}

func (s *postService) ListUserPosts(ctx context.Context, username string, page int) (models.PostsPage, error) {
	log := logger.FromContext(ctx)
	page = normalizePage(page)

	user, err := s.users.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		log.Err(err).Str("func", "*postService.ListUserPosts").Str("username", username).Msg("user search by username failed")
		return models.PostsPage{}, mapStoreError(err, "user search by username failed")
	}

	posts, total, err := s.posts.ListPostsByUser(ctx, user.UserID, PostsPerPage, (page-1)*PostsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*postService.ListUserPosts").Int64("user_id", user.UserID).Msg("listing posts failed")
		return models.PostsPage{}, mapStoreError(err, "listing posts failed")
	}

	return newPostsPage(posts, page, total), nil
}

// UpdatePost changes title and content. Only the author may do so.
func (s *postService) UpdatePost(ctx context.Context, userID, postID int64, req models.PostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return models.Post{}, err
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Content = req.Content

	updated, err := s.posts.UpdatePost(ctx, post)
	if err != nil {
		log.Err(err).Str("func", "*postService.UpdatePost").Int64("post_id", postID).Msg("post update failed")
		return models.Post{}, mapStoreError(err, "post update failed")
	}

	return updated, nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID int64) error {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.DeletePost").Int64("post_id", postID).Msg("post deletion failed")
		return mapStoreError(err, "post deletion failed")
	}

	s.events.record(ctx, userID, models.EventPostDeleted, fmt.Sprintf("post %d", postID))

	return nil
}

// ownedPost loads a post and fails with ErrForbidden unless userID wrote it.
func (s *postService) ownedPost(ctx context.Context, userID, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		log.Err(err).Str("func", "*postService.ownedPost").Int64("post_id", postID).Msg("post search failed")
		return models.Post{}, mapStoreError(err, "post search failed")
	}

	if post.UserID != userID {
		log.Warn().Str("func", "*postService.ownedPost").Int64("post_id", postID).Int64("user_id", userID).Msg("user is not the author of the post")
		return models.Post{}, fmt.Errorf("%w: post %d belongs to another user", ErrForbidden, postID)
	}

	return post, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func newPostsPage(posts []models.Post, page int, total int64) models.PostsPage {
	if posts == nil {
		posts = []models.Post{}
	}

	return models.PostsPage{
		Posts:      posts,
		Page:       page,
		PerPage:    PostsPerPage,
		Total:      total,
		TotalPages: int((total + PostsPerPage - 1) / PostsPerPage),
	}
}
