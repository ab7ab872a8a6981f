package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob := env.registerVerified(t, "bob", "bob@x.com", "Passw0rd!")
	carol := env.registerVerified(t, "carol", "carol@x.com", "Passw0rd!")

	post, err := env.services.PostService.CreatePost(ctx, bob.UserID, models.PostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	state, err := env.services.LikeService.ToggleLike(ctx, carol.UserID, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{Liked: true, Likes: 1}, state)

	state, err = env.services.LikeService.ToggleLike(ctx, bob.UserID, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{Liked: true, Likes: 2}, state)

	state, err = env.services.LikeService.ToggleLike(ctx, carol.UserID, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{Liked: false, Likes: 1}, state)

	// Only carol's like notified bob; his own like and the unlike did not.
	list, err := env.services.NotificationService.ListNotifications(ctx, bob.UserID, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, models.NotificationLike, list.Notifications[0].Kind)
	assert.Nil(t, list.Notifications[0].CommentID)

	assert.Contains(t, env.store.eventKinds(carol.UserID), models.EventLikeToggled)

	_, err = env.services.LikeService.ToggleLike(ctx, carol.UserID, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}
