package resthttp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sir_venger/filekeeper/internal/models"
)

const fileField = "file"

// readUpload достаёт файл из multipart-поля "file". Отсутствие поля (или не-multipart
// тело) даёт Upload без содержимого: его отклонит валидация сервиса.
// Вызывающий обязан вызвать cleanup.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (models.Upload, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadBytes)

	noop := func() {}
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			return models.Upload{}, noop, models.TooLarge(err)
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return models.Upload{}, noop, nil
		default:
			return models.Upload{}, noop, models.Invalid("The file field is required.")
		}
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	f, header, err := r.FormFile(fileField)
	if err != nil {
		// http.ErrMissingFile
		return models.Upload{}, cleanup, nil
	}

	return models.Upload{
		Name:    header.Filename,
		Size:    header.Size,
		Content: f,
	}, func() { _ = f.Close(); cleanup() }, nil
}
