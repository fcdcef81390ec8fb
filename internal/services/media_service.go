package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedMediaType = errors.New("only JPEG, PNG, WebP, or GIF images are allowed")
	ErrInvalidFilename      = errors.New("invalid media filename")
	ErrMediaNotFound        = errors.New("media file not found")
)

const mediaURLPrefix = "/api/tasks/media/"

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// MediaService stores completion photos on local disk under a flat upload
// directory and hands out the relative URLs the API serves them from.
type MediaService struct {
	dir string
}

// NewMediaService creates a new MediaService, ensuring the upload
// directory exists.
func NewMediaService(dir string) (*MediaService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &MediaService{dir: dir}, nil
}

// SaveTaskPhoto persists an uploaded image for a task and returns the
// relative URL it will be served from. Filenames are uuid-based so uploads
// never collide or leak original names.
func (s *MediaService) SaveTaskPhoto(taskID uint64, contentType string, r io.Reader) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedMediaType
	}

	filename := fmt.Sprintf("task_%d_%s.%s", taskID, uuid.NewString(), ext)
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return mediaURLPrefix + filename, nil
}

// Remove deletes a stored photo by the URL SaveTaskPhoto returned. Used to
// discard uploads whose task update was rejected.
func (s *MediaService) Remove(url string) error {
	filename := strings.TrimPrefix(url, mediaURLPrefix)
	path, err := s.Path(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Path resolves a stored filename to its on-disk path, rejecting anything
// that would escape the upload directory.
func (s *MediaService) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidFilename
	}

	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrMediaNotFound
		}
		return "", fmt.Errorf("failed to stat media file: %w", err)
	}
	return path, nil
}
