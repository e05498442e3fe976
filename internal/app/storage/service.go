/*
Package storage stores pin images in S3-compatible object storage.

Clients either ask for a presigned PUT URL and upload directly, or stream a multipart upload
through the API. Pins reference images by object key.
*/
package storage

import (
	"context"
	"io"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Configured reports whether every connection setting is present.
func (c ServiceConfig) Configured() bool {
	return c.S3BucketName != "" && c.S3Endpoint != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// StorageService defines the object storage operations used for pin images.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading an image under key.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// PresignDownload generates a pre-signed URL for reading the image under key.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Upload streams body to key.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) error

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService returns the S3-compatible implementation for cfg.
func NewStorageService(ctx context.Context, cfg ServiceConfig) (StorageService, error) {
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
