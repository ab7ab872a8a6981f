package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-blog/internal/logger"
)

// avatarFileStorage keeps avatars as files in a single directory.
type avatarFileStorage struct {
	dir    string
	logger *logger.Logger
}

// NewAvatarFileStorage returns an [AvatarStorage] rooted at dir, creating the
// directory when needed.
func NewAvatarFileStorage(dir string, logger *logger.Logger) (AvatarStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating avatar directory: %w", err)
	}

	return &avatarFileStorage{dir: dir, logger: logger}, nil
}

func (s *avatarFileStorage) SaveAvatar(ctx context.Context, name, _ string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*avatarFileStorage.SaveAvatar").Str("name", name).Msg("error writing avatar")
		return fmt.Errorf("error writing avatar: %w", err)
	}

	return nil
}

func (s *avatarFileStorage) OpenAvatar(_ context.Context, name string) (io.ReadCloser, string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrAvatarNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("error opening avatar: %w", err)
	}

	return f, contentTypeByName(name), nil
}

func (s *avatarFileStorage) DeleteAvatar(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting avatar: %w", err)
	}

	return nil
}

// path resolves name inside the avatar directory. Names with any directory
// component are rejected.
func (s *avatarFileStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrAvatarNotFound
	}
	return filepath.Join(s.dir, name), nil
}

func contentTypeByName(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
