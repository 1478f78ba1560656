package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"mime"
	"net/http"
	"strings"

	"bridgeforum/internal/config"
	"bridgeforum/internal/featureflags"
	"bridgeforum/internal/models"
	"bridgeforum/internal/observability"
	"bridgeforum/internal/storage"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageMaxUploadSizeMB = 5
	DefaultImageMaxDimension    = 1600
	JPEGQuality                 = 82
	WebPQuality                 = 70
	// MaxImagePixels bounds width*height as declared by the image header.
	MaxImagePixels = 40_000_000
)

// Storage prefixes for the places images are attached to.
const (
	ImagePrefixPosts    = "posts"
	ImagePrefixComments = "comments"
	ImagePrefixProfiles = "profiles"
)

type UploadImageInput struct {
	UserID      uint
	Prefix      string
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService validates uploads, scales them down and writes them to storage.
type ImageService struct {
	store              storage.Storage
	flags              *featureflags.Manager
	maxUploadSizeBytes int64
	maxDimension       int
	format             string
}

func NewImageService(store storage.Storage, cfg *config.Config, flags *featureflags.Manager) *ImageService {
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	maxDimension := DefaultImageMaxDimension
	format := "jpeg"

	if cfg != nil {
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
		if cfg.ImageMaxDimension > 0 {
			maxDimension = cfg.ImageMaxDimension
		}
		if strings.EqualFold(cfg.ImageFormat, "webp") {
			format = "webp"
		}
	}

	return &ImageService{
		store:              store,
		flags:              flags,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		maxDimension:       maxDimension,
		format:             format,
	}
}

// Upload returns the public URL of the stored, re-encoded image.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (string, error) {
	url, err := s.upload(ctx, in)
	switch {
	case err == nil:
		observability.ImageUploads.WithLabelValues("stored").Inc()
	case models.ErrorCode(err) == models.CodeValidation:
		observability.ImageUploads.WithLabelValues("rejected").Inc()
	default:
		observability.ImageUploads.WithLabelValues("failed").Inc()
	}
	return url, err
}

func (s *ImageService) upload(ctx context.Context, in UploadImageInput) (string, error) {
	if s.flags != nil && !s.flags.Enabled(featureflags.ImageUploads, in.UserID) {
		return "", models.NewValidationError("Image uploads are disabled")
	}
	if in.UserID == 0 {
		return "", models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if header.Width <= 0 || header.Height <= 0 || int64(header.Width)*int64(header.Height) > MaxImagePixels {
		return "", models.NewValidationError("Image dimensions too large")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, decodedFormatToMime(format)) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	scaled := resizeToFit(decoded, s.maxDimension, s.maxDimension)

	var (
		encoded     []byte
		ext         string
		contentType string
	)
	if s.format == "webp" {
		encoded, err = encodeWebP(scaled, WebPQuality)
		ext, contentType = "webp", "image/webp"
	} else {
		encoded, err = encodeJPEG(flatten(scaled), JPEGQuality)
		ext, contentType = "jpg", "image/jpeg"
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}

	prefix := in.Prefix
	if prefix == "" {
		prefix = ImagePrefixPosts
	}
	url, err := s.store.Save(ctx, storage.NewKey(prefix, ext), encoded, contentType)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}

// Remove deletes a stored image. Failures are logged only.
func (s *ImageService) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil {
		logWarn(ctx, "failed to delete stored image", err)
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

// flatten composites transparent pixels onto white; JPEG has no alpha channel.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}
