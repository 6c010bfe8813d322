package storagehttp

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sir_venger/filekeeper/pkg/storageproto"
)

// insertObject принимает PUT-запросы на запись объекта.
func (a *Server) insertObject(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireObjectRequest(w, r)
	if !ok {
		return
	}
	a.writeObject(w, r, req)
}

// writeObject пишет тело во временный файл в .incoming и переносит его на место rename'ом,
// поэтому читатели никогда не видят недописанный объект.
func (a *Server) writeObject(w http.ResponseWriter, r *http.Request, req *objectRequest) {
	if err := os.MkdirAll(a.incomingDir(), 0o755); err != nil {
		a.internalError(w, r, err)
		return
	}

	tmpPath := filepath.Join(a.incomingDir(), uuid.NewString()+incomingSuffix)
	f, err := os.Create(tmpPath)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	defer os.Remove(tmpPath)

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), r.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if r.ContentLength >= 0 && n != r.ContentLength {
		http.Error(w, "size mismatch", http.StatusBadRequest)
		return
	}

	got := hex.EncodeToString(h.Sum(nil))
	if exp := r.Header.Get(storageproto.HeaderChecksum); exp != "" && exp != got {
		http.Error(w, "sha256 mismatch", http.StatusConflict)
		return
	}

	if err = os.MkdirAll(filepath.Dir(req.path), 0o755); err != nil {
		a.internalError(w, r, err)
		return
	}
	if err = os.Rename(tmpPath, req.path); err != nil {
		a.internalError(w, r, err)
		return
	}

	meta := objectMeta{Key: req.key, Size: n, Sha256: got, StoredAt: time.Now().UTC()}
	if err = writeMeta(req.meta, meta); err != nil {
		a.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(meta)
}
