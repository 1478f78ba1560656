// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
)

// StorageStub keeps saved objects in memory and serves them under /uploads/.
type StorageStub struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	Deleted []string
	Err     error
}

// NewStorageStub creates an empty in-memory storage.
func NewStorageStub() *StorageStub {
	return &StorageStub{Objects: make(map[string][]byte), Types: make(map[string]string)}
}

// Save records data under key, or returns Err when set.
func (s *StorageStub) Save(_ context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Objects[key] = append([]byte(nil), data...)
	s.Types[key] = contentType
	return "/uploads/" + key, nil
}

// Delete forgets the object behind url.
func (s *StorageStub) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimPrefix(url, "/uploads/")
	delete(s.Objects, key)
	s.Deleted = append(s.Deleted, key)
	return nil
}

// Len returns the number of stored objects.
func (s *StorageStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
