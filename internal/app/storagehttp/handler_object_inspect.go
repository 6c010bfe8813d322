package storagehttp

import (
	"net/http"
	"os"
	"strconv"

	"github.com/sir_venger/filekeeper/pkg/storageproto"
)

// inspectObject отвечает на HEAD-запросы метаданными объекта.
func (a *Server) inspectObject(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireObjectRequest(w, r)
	if !ok {
		return
	}

	info, err := os.Stat(req.path)
	if err != nil || info.IsDir() {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set(storageproto.HeaderSize, strconv.FormatInt(info.Size(), 10))
	if meta, err := readMeta(req.meta); err == nil {
		w.Header().Set(storageproto.HeaderChecksum, meta.Sha256)
	}
	w.WriteHeader(http.StatusOK)
}
