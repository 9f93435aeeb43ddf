package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helljxnn/astrostar-console/internal/delivery/http/helpers"
	"github.com/helljxnn/astrostar-console/internal/domain"
)

// UploadResponse is the success payload for POST /uploads.
type UploadResponse struct {
	URL string `json:"url"`
}

type UploadController struct {
	Logger *slog.Logger
	Store  domain.FileStore
}

func NewUploadController(logger *slog.Logger, store domain.FileStore) *UploadController {
	return &UploadController{
		Logger: logger,
		Store:  store,
	}
}

// Upload godoc
// @Summary Upload an event image or schedule file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param kind query string false "image or schedule (default image)"
// @Param file formData file true "File to upload"
// @Success 201 {object} helpers.APIResponse "data contains {url}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (too large or unsupported type)"
// @Router /uploads [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadBytes)
	if err := r.ParseMultipartForm(domain.MaxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart request")
		return
	}

	kind := domain.UploadImage
	if r.URL.Query().Get("kind") == "schedule" {
		kind = domain.UploadSchedule
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file field is required")
		return
	}
	defer file.Close()

	url, err := c.Store.Store(r.Context(), kind, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file exceeds the maximum allowed size")
		case errors.Is(err, domain.ErrUnsupportedFile):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unsupported file type")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not store file")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadResponse{URL: url})
}
