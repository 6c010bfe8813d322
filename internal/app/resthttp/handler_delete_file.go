package resthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.FilesService.Destroy(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
