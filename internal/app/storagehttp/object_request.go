package storagehttp

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// objectRequest содержит все вычисленные пути до объекта и его метаданных.
type objectRequest struct {
	key  string
	path string
	meta string
}

// requireObjectRequest валидирует ключ из URL и возвращает заполненную структуру.
func (a *Server) requireObjectRequest(w http.ResponseWriter, r *http.Request) (*objectRequest, bool) {
	req, err := newObjectRequest(a.dataDir, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return req, true
}

// newObjectRequest берёт ключ из уже раскодированного пути и рассчитывает пути на диске.
func newObjectRequest(root string, r *http.Request) (*objectRequest, error) {
	key := strings.TrimPrefix(r.URL.Path, "/objects/")
	if key == "" || key == r.URL.Path {
		return nil, fmt.Errorf("invalid path")
	}

	// Пустые, "." и ".." сегменты запрещены: ключ не должен выходить за каталог данных.
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return nil, fmt.Errorf("invalid object key %q", key)
		}
	}

	rel := filepath.FromSlash(key)
	return &objectRequest{
		key:  key,
		path: filepath.Join(root, objectsDirName, rel),
		meta: filepath.Join(root, metaDirName, rel+metaFileSuffix),
	}, nil
}
