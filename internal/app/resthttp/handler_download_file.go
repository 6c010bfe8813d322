package resthttp

import (
	"bufio"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/h2non/filetype"
)

const (
	sniffLen        = 261
	fallbackContent = "application/octet-stream"
)

// downloadFile отдаёт содержимое файла. Content-Type определяется по первым байтам.
func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	rec, rc, err := s.FilesService.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 4096)
	head, _ := br.Peek(sniffLen)

	contentType := fallbackContent
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rec.FileName}))
	w.Header().Set("Content-Length", strconv.FormatInt(rec.FileSize, 10))
	w.WriteHeader(http.StatusOK)

	// Заголовки уже отправлены: обрыв можно только залогировать.
	if _, err := io.Copy(w, br); err != nil {
		s.Logger.Warn("download interrupted",
			slog.String("id", rec.ID),
			slog.String("error", err.Error()),
		)
	}
}
