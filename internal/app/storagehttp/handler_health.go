package storagehttp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
)

// healthStats: payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	TotalBytes int64 `json:"total_bytes"`
}

// health возвращает суммарный объём хранимых объектов.
func (a *Server) health(w http.ResponseWriter, r *http.Request) {
	var total int64
	err := filepath.WalkDir(a.objectsDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()

		return nil
	})

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		a.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthStats{
		OK:         true,
		TotalBytes: total,
	})
}
