// Package storage implements the object storage port on MinIO (or any
// S3-compatible endpoint).
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/property-ledger/backend/config"
	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// minioStorage implements the adapter.ObjectStorage interface.
type minioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStorage creates a MinIO-backed object storage instance and ensures
// the configured bucket exists.
func NewMinioStorage(cfg *config.StorageConfig) (adapter.ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check storage bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create storage bucket: %w", err)
		}
		slog.Info("Storage bucket created", "bucket", cfg.Bucket)
	}

	slog.Info("Object storage connected",
		"endpoint", cfg.Endpoint,
		"bucket", cfg.Bucket,
	)

	return &minioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Put writes an object under the given key.
func (s *minioStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to store object %s: %w", key, err)
	}
	return nil
}

// Get opens an object for reading. The caller closes the reader.
func (s *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, *adapter.ObjectInfo, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, mapStorageError(key, err)
	}

	// GetObject is lazy; Stat forces the first request so a missing key is
	// reported here instead of on the first Read.
	stat, err := object.Stat()
	if err != nil {
		_ = object.Close()
		return nil, nil, mapStorageError(key, err)
	}

	return object, objectInfo(key, stat), nil
}

// Stat returns object metadata without reading the body.
func (s *minioStorage) Stat(ctx context.Context, key string) (*adapter.ObjectInfo, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapStorageError(key, err)
	}
	return objectInfo(key, stat), nil
}

// Copy duplicates an object under a new key.
func (s *minioStorage) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: srcKey},
	)
	if err != nil {
		return mapStorageError(srcKey, err)
	}
	return nil
}

// Delete removes an object. Deleting a missing key is not an error.
func (s *minioStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the externally reachable URL for a key.
func (s *minioStorage) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// objectInfo converts MinIO object info to the adapter type.
func objectInfo(key string, stat minio.ObjectInfo) *adapter.ObjectInfo {
	return &adapter.ObjectInfo{
		Key:          key,
		SizeBytes:    stat.Size,
		ContentType:  stat.ContentType,
		LastModified: stat.LastModified,
	}
}

// mapStorageError translates MinIO error responses to domain errors.
func mapStorageError(key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return domainerror.ErrObjectNotFound
	}
	return fmt.Errorf("storage operation on %s failed: %w", key, err)
}
