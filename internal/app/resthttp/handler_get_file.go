package resthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	rec, err := s.FilesService.Show(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
