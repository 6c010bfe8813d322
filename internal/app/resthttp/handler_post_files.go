package resthttp

import "net/http"

// postFiles принимает multipart-загрузку и создаёт запись о файле.
func (s *Server) postFiles(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := s.readUpload(w, r)
	defer cleanup()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec, err := s.FilesService.Create(r.Context(), upload)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}
