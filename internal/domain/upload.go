package domain

import (
	"context"
	"errors"
	"io"
)

// Upload validation errors.
var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// MaxUploadBytes is the upload size limit (5MB).
const MaxUploadBytes = 5 << 20

// UploadKind distinguishes event images from schedule documents. Images must
// have an image/* MIME type; schedules must be exactly application/pdf.
type UploadKind string

const (
	UploadImage    UploadKind = "image"
	UploadSchedule UploadKind = "schedule"
)

// FileStore stores an uploaded file and returns a durable URL for it.
type FileStore interface {
	Store(ctx context.Context, kind UploadKind, filename, contentType string, size int64, r io.Reader) (url string, err error)
}
