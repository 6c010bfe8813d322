package storagehttp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// objectMeta хранится рядом с объектом (в каталоге meta) и описывает его содержимое.
type objectMeta struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	Sha256   string    `json:"sha256"`
	StoredAt time.Time `json:"stored_at"`
}

// writeMeta сохраняет метаданные объекта на диск.
func writeMeta(path string, m objectMeta) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}

// readMeta читает метаданные объекта с диска.
func readMeta(path string) (*objectMeta, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m objectMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
