package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// PhotoStore keeps uploaded listing photos on local disk. File names are
// generated server side; client-supplied names never reach the filesystem.
type PhotoStore struct {
	dir      string
	maxBytes int64
	client   *http.Client
}

func NewPhotoStore(dir string, maxPhotoMB int) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &PhotoStore{
		dir:      dir,
		maxBytes: int64(maxPhotoMB) << 20,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (s *PhotoStore) Dir() string {
	return s.dir
}

// SaveFromURL downloads a remote image and stores it, returning the stored
// file name.
func (s *PhotoStore) SaveFromURL(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("invalid photo link: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch photo: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := extByContentType[strings.TrimSpace(contentType)]
	if !ok {
		return "", fmt.Errorf("unsupported photo content type %q", contentType)
	}

	return s.write(resp.Body, ext)
}

// Save stores an uploaded file, deriving the extension from the original
// name.
func (s *PhotoStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return "", fmt.Errorf("unsupported photo extension %q", ext)
	}
	return s.write(r, ext)
}

func (s *PhotoStore) write(r io.Reader, ext string) (string, error) {
	name := "photo-" + uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return "", fmt.Errorf("photo exceeds %d byte limit", s.maxBytes)
	}

	return name, nil
}
