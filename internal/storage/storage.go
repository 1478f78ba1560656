// Package storage persists uploaded images on local disk or in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"bridgeforum/internal/config"

	"github.com/google/uuid"
)

// Storage saves image bytes under a key and returns the URL the browser loads them from.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// NewKey builds an object key of the form <prefix>/<uuid>.<ext>.
func NewKey(prefix, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// New selects the backend named by IMAGE_STORAGE.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch strings.ToLower(cfg.ImageStorage) {
	case "", "local":
		return NewLocalStorage(cfg.ImageUploadDir)
	case "s3":
		return NewS3Storage(ctx, S3Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			PublicURL: cfg.S3PublicURL,
			UseSSL:    cfg.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unsupported image storage %q", cfg.ImageStorage)
	}
}
