package storagehttp

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
)

// deleteObject удаляет объект и его метаданные; отсутствие объекта: тоже успех.
func (a *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireObjectRequest(w, r)
	if !ok {
		return
	}

	for _, p := range []string{req.path, req.meta} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			a.internalError(w, r, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
