// Package service holds the forum's business rules between the HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"bridgeforum/internal/middleware"
	"bridgeforum/internal/models"
)

const maxBodyLength = 10000

// ImageUploader stores user images and returns their public URL.
type ImageUploader interface {
	Upload(ctx context.Context, in UploadImageInput) (string, error)
	Remove(ctx context.Context, url string)
}

// ParseFrustrationLevel reads the form value and checks the 1..10 range.
func ParseFrustrationLevel(raw string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, models.NewValidationError("frustration level must be a number")
	}
	if !models.ValidFrustrationLevel(level) {
		return 0, models.NewValidationError("frustration level must be between 1 and 10")
	}
	return level, nil
}

func validateBody(body string, allowEmpty bool) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" && !allowEmpty {
		return "", models.NewValidationError("Content is required")
	}
	if len(body) > maxBodyLength {
		return "", models.NewValidationError("Content too long (max 10000 characters)")
	}
	return body, nil
}

// uploadOptional runs the upload when in carries content.
func uploadOptional(ctx context.Context, images ImageUploader, in *UploadImageInput) (string, error) {
	if in == nil || len(in.Content) == 0 {
		return "", nil
	}
	if images == nil {
		return "", models.NewValidationError("Image uploads are not available")
	}
	return images.Upload(ctx, *in)
}

// discardImage removes an uploaded image whose owning row was not written.
func discardImage(ctx context.Context, images ImageUploader, url string) {
	if url == "" || images == nil {
		return
	}
	images.Remove(ctx, url)
}

func logWarn(ctx context.Context, msg string, err error, attrs ...any) {
	middleware.Logger.WarnContext(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
}
