package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arphatra/arphatra/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

type UploadService interface {
	// Upload streams one file into the bucket under a generated name,
	// marks it public, and returns the public URL.
	Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error)
}

type uploadService struct {
	client *minio.Client
	bucket string
	public string
}

func NewUploadService(cfg *config.Config) (UploadService, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage client: %w", err)
	}

	scheme := "http"
	if cfg.Storage.UseSSL {
		scheme = "https"
	}
	return &uploadService{
		client: client,
		bucket: cfg.Storage.Bucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.Storage.Endpoint, cfg.Storage.Bucket),
	}, nil
}

func (s *uploadService) Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectName := uuid.NewString() + ext

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	})
	if err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("Object storage upload failed")
		return "", err
	}

	return s.public + "/" + objectName, nil
}
