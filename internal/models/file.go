package models

import (
	"io"
	"strings"
	"time"
)

// FileRecord описывает метаданные одного сохранённого файла.
type FileRecord struct {
	ID           string    `json:"id" msgpack:"id"`
	FileName     string    `json:"file_name" msgpack:"file_name"`
	FileSize     int64     `json:"file_size" msgpack:"file_size"`
	FileLocation string    `json:"file_location" msgpack:"file_location"`
	CreatedAt    time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" msgpack:"updated_at"`
}

// Upload: содержимое и атрибуты файла, пришедшего от клиента.
type Upload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Validate проверяет, что загрузка пригодна для записи в хранилище.
func (u Upload) Validate() error {
	switch {
	case u.Content == nil:
		return Invalid("The file field is required.")
	case strings.TrimSpace(u.Name) == "":
		return Invalid("The file must have a name.")
	case u.Size < 0:
		return Invalid("The file size is invalid.")
	}

	return nil
}
