// Package storage persists uploaded child photos on local disk and maps
// them to the public URL path the API serves them from.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kindbridge/kindbridge-backend/pkg/config"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore is the surface controllers depend on for photo persistence.
type ImageStore interface {
	SaveImage(ctx context.Context, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

// LocalStore writes images under a directory served as static files.
type LocalStore struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewLocalStore ensures the upload directory exists and returns the store.
func NewLocalStore(cfg config.UploadsConfig) (*LocalStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	publicPath := cfg.PublicPath
	if !strings.HasSuffix(publicPath, "/") {
		publicPath += "/"
	}
	return &LocalStore{
		dir:        cfg.Dir,
		publicPath: publicPath,
		maxBytes:   cfg.MaxUploadBytes(),
	}, nil
}

// SaveImage validates the content type, writes the image under a random
// name, and returns the public URL path.
func (s *LocalStore) SaveImage(_ context.Context, contentType string, r io.Reader) (string, error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dest := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	limit := s.maxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	written, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("writing image file: %w", err)
	}
	if written > limit {
		os.Remove(dest)
		return "", fmt.Errorf("image exceeds %d byte limit", limit)
	}

	return path.Join(s.publicPath, name), nil
}

// Remove deletes the file behind a public URL previously returned by
// SaveImage. Unknown paths are ignored.
func (s *LocalStore) Remove(_ context.Context, publicURL string) error {
	name := path.Base(strings.TrimSpace(publicURL))
	if name == "" || name == "." || name == "/" {
		return nil
	}
	target := filepath.Join(s.dir, name)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image file: %w", err)
	}
	return nil
}

// Dir returns the directory static file serving should mount.
func (s *LocalStore) Dir() string {
	return s.dir
}

func extensionFor(contentType string) (string, error) {
	clean := strings.TrimSpace(contentType)
	if clean == "" {
		return "", fmt.Errorf("content type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("content type invalid: %w", err)
	}
	ext, ok := allowedImageTypes[strings.ToLower(mediaType)]
	if !ok {
		return "", fmt.Errorf("content type %q not allowed, expected %s", mediaType, allowedImageDescription())
	}
	return ext, nil
}

func allowedImageDescription() string {
	types := make([]string, 0, len(allowedImageTypes))
	for value := range allowedImageTypes {
		types = append(types, value)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}
