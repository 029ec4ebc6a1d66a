package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AvatarStore accepts image bytes and returns an opaque reference string.
// The rest of the service stores and echoes that reference and never
// interprets the bytes again.
type AvatarStore interface {
	Upload(ctx context.Context, originalFilename, contentType string, data []byte) (string, error)
}

// MinioConfig holds object storage connection settings.
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

type minioAvatarStore struct {
	client *minio.Client
	bucket string
}

// NewMinioAvatarStore connects to MinIO and makes sure the avatar bucket
// exists.
func NewMinioAvatarStore(ctx context.Context, cfg MinioConfig) (AvatarStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &minioAvatarStore{
		client: client,
		bucket: cfg.BucketName,
	}, nil
}

func (s *minioAvatarStore) Upload(ctx context.Context, originalFilename, contentType string, data []byte) (string, error) {
	ext := filepath.Ext(originalFilename)
	objectName := fmt.Sprintf("avatars/%s%s", uuid.New().String(), ext)

	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return fmt.Sprintf("/%s/%s", s.bucket, objectName), nil
}
