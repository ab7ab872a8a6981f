package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// avatarKeyPrefix namespaces avatar objects inside the bucket.
const avatarKeyPrefix = "avatars"

// s3API is the subset of *s3.Client used by avatarS3Storage.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// avatarS3Storage keeps avatars in an S3-compatible bucket.
type avatarS3Storage struct {
	client s3API
	bucket string
	logger *logger.Logger
}

// NewAvatarS3Storage builds an S3 client from cfg. Static credentials are
// used when both keys are set, otherwise the default AWS credential chain.
// A custom endpoint switches to path-style addressing for MinIO and similar
// services.
func NewAvatarS3Storage(ctx context.Context, cfg config.Avatars, logger *logger.Logger) (AvatarStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return newAvatarS3Storage(client, cfg.S3Bucket, logger), nil
}

func newAvatarS3Storage(client s3API, bucket string, logger *logger.Logger) *avatarS3Storage {
	return &avatarS3Storage{client: client, bucket: bucket, logger: logger}
}

func (s *avatarS3Storage) SaveAvatar(ctx context.Context, name, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*avatarS3Storage.SaveAvatar").Str("name", name).Msg("error uploading avatar")
		return fmt.Errorf("error uploading avatar: %w", err)
	}

	return nil
}

func (s *avatarS3Storage) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, "", ErrAvatarNotFound
		}
		return nil, "", fmt.Errorf("error downloading avatar: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = contentTypeByName(name)
	}

	return out.Body, contentType, nil
}

func (s *avatarS3Storage) DeleteAvatar(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("error deleting avatar: %w", err)
	}

	return nil
}

func (s *avatarS3Storage) key(name string) string {
	return path.Join(avatarKeyPrefix, path.Base(name))
}
