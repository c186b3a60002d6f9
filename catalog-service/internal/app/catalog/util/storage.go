package util

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sliceline/pkg/metrics"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage - клиент S3-совместимого объектного хранилища (MinIO, AWS S3)
// Хранит изображения товаров и топпингов под opaque-ключами
type S3Storage struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewS3Storage создает клиент хранилища и проверяет доступность бакета
func NewS3Storage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &S3Storage{
		client:   client,
		endpoint: endpoint,
		bucket:   bucket,
		useSSL:   useSSL,
	}, nil
}

// Upload загружает файл под указанным ключом
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte) error {
	start := time.Now()

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		metrics.StorageUploads.WithLabelValues("catalog-service", "failed").Inc()
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	metrics.StorageUploads.WithLabelValues("catalog-service", "success").Inc()
	metrics.StorageOperationDuration.WithLabelValues("catalog-service", "upload").Observe(time.Since(start).Seconds())

	return nil
}

// Delete удаляет файл по ключу
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	start := time.Now()

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		metrics.StorageDeletes.WithLabelValues("catalog-service", "failed").Inc()
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	metrics.StorageDeletes.WithLabelValues("catalog-service", "success").Inc()
	metrics.StorageOperationDuration.WithLabelValues("catalog-service", "delete").Observe(time.Since(start).Seconds())

	return nil
}

// ObjectURI возвращает публичный URL объекта по ключу
// Чистая функция, без обращения к хранилищу
func (s *S3Storage) ObjectURI(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
