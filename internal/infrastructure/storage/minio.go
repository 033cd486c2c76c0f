package storage

import (
	"bytes"
	"context"
	"fmt"

	"subjectstore-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectPrefix is where subject images live inside the bucket.
const objectPrefix = "subjects/"

// MinIOStrategy uploads images to a MinIO bucket and stores the object URL
// in the document.
type MinIOStrategy struct {
	client *minio.Client
	bucket string
	useSSL bool
}

func NewMinIOStrategy(cfg config.MinIOConfig) (*MinIOStrategy, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStrategy{
		client: client,
		bucket: cfg.Bucket,
		useSSL: cfg.UseSSL,
	}, nil
}

func (s *MinIOStrategy) Name() string {
	return config.StrategyMinIO
}

func (s *MinIOStrategy) Store(ctx context.Context, file *UploadedFile) (StoredImage, error) {
	mime := detectContentType(file)
	key := objectPrefix + uniqueFilename(file.Filename)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(file.Data),
		int64(len(file.Data)),
		minio.PutObjectOptions{
			ContentType: mime,
		},
	)
	if err != nil {
		return StoredImage{}, fmt.Errorf("failed to upload to minio: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}

	return StoredImage{
		Value:       fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key),
		ContentType: mime,
	}, nil
}
