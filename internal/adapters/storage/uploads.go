package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

// LocalStore writes uploaded files to a directory on disk and serves
// them back under a configured base URL.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed and returns a
// FileStore backed by it.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Store(ctx context.Context, kind domain.UploadKind, filename, contentType string, size int64, r io.Reader) (string, error) {
	if size > domain.MaxUploadBytes {
		return "", domain.ErrFileTooLarge
	}
	if err := allowedType(kind, contentType); err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	name := fmt.Sprintf("%s-%s%s", kind, uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	// Cap the copy so a lying Content-Length cannot blow past the limit.
	written, err := io.Copy(f, io.LimitReader(r, domain.MaxUploadBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > domain.MaxUploadBytes {
		os.Remove(path)
		return "", domain.ErrFileTooLarge
	}

	return s.baseURL + "/" + name, nil
}

func allowedType(kind domain.UploadKind, contentType string) error {
	switch kind {
	case domain.UploadImage:
		if strings.HasPrefix(contentType, "image/") {
			return nil
		}
	case domain.UploadSchedule:
		if contentType == "application/pdf" {
			return nil
		}
	}
	return domain.ErrUnsupportedFile
}
