package resthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// putFile заменяет содержимое существующего файла (PUT и PATCH).
func (s *Server) putFile(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := s.readUpload(w, r)
	defer cleanup()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec, err := s.FilesService.Update(r.Context(), chi.URLParam(r, "id"), upload)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
