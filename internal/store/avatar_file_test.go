package store

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile_pics")
	s, err := NewAvatarFileStorage(dir, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SaveAvatar(ctx, "abc.png", "image/png", []byte("png-bytes")))

	rc, ct, err := s.OpenAvatar(ctx, "abc.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", ct)

	require.NoError(t, s.DeleteAvatar(ctx, "abc.png"))
	require.NoError(t, s.DeleteAvatar(ctx, "abc.png"))

	_, _, err = s.OpenAvatar(ctx, "abc.png")
	require.ErrorIs(t, err, ErrAvatarNotFound)
}

func TestAvatarFileStorage_RejectsPaths(t *testing.T) {
	s, err := NewAvatarFileStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "../secret", "a/b.png"} {
		_, _, err = s.OpenAvatar(context.Background(), name)
		assert.ErrorIs(t, err, ErrAvatarNotFound, name)
	}
}

func TestContentTypeByName(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentTypeByName("x.jpg"))
	assert.Equal(t, "application/octet-stream", contentTypeByName("x"))
}
