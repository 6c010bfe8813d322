package resthttp

import "net/http"

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	recs, err := s.FilesService.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
