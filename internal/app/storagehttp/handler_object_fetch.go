package storagehttp

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"github.com/sir_venger/filekeeper/pkg/storageproto"
)

// fetchObject обслуживает GET-запросы, возвращая содержимое объекта.
func (a *Server) fetchObject(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireObjectRequest(w, r)
	if !ok {
		return
	}

	f, err := os.Open(req.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		a.internalError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}

	size := strconv.FormatInt(info.Size(), 10)
	w.Header().Set("Content-Length", size)
	w.Header().Set(storageproto.HeaderSize, size)
	w.Header().Set("Content-Type", "application/octet-stream")

	// Заголовки уже отправлены: при обрыве остаётся только оборвать ответ.
	_, _ = io.Copy(w, f)
}
