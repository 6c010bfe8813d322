package filesvc

import (
	"context"
	"strings"

	"github.com/sir_venger/filekeeper/internal/models"
)

const (
	msgCreateStorage = "Error Storing File."
	msgCreateRecord  = "File Not Saved"
)

// Create сохраняет содержимое в блоб-хранилище и заводит на него запись.
// Если запись создать не удалось, только что записанный объект удаляется.
func (s *Files) Create(ctx context.Context, upload models.Upload) (models.FileRecord, error) {
	if err := upload.Validate(); err != nil {
		return models.FileRecord{}, err
	}

	name := strings.TrimSpace(upload.Name)
	key, err := s.BlobStorage.Put(ctx, newKey(s.KeyPrefix, name), upload.Content, upload.Size)
	if err != nil {
		return models.FileRecord{}, models.StorageFailure(msgCreateStorage, err)
	}

	rec, err := s.MetaStorage.Create(ctx, models.FileRecord{
		FileName:     name,
		FileSize:     upload.Size,
		FileLocation: key,
	})
	if err != nil {
		s.discard(ctx, "create", key)
		return models.FileRecord{}, models.PersistenceFailure(msgCreateRecord, err)
	}

	return rec, nil
}
