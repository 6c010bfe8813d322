package filesvc

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sir_venger/filekeeper/internal/models"
)

const (
	msgUpdateStorage = "Error Storing Updated File."
	msgUpdateRecord  = "File Not Updated"
)

// Update заменяет содержимое файла, сохраняя его id.
//
// Порядок: новый объект → запись → удаление старого объекта. При любом сбое
// до обновления записи она продолжает ссылаться на старый, целый объект.
func (s *Files) Update(ctx context.Context, id string, upload models.Upload) (models.FileRecord, error) {
	rec, err := s.lookup(ctx, id, msgUpdateRecord)
	if err != nil {
		return models.FileRecord{}, err
	}
	if err = upload.Validate(); err != nil {
		return models.FileRecord{}, err
	}

	name := strings.TrimSpace(upload.Name)
	key, err := s.BlobStorage.Put(ctx, newKey(s.KeyPrefix, name), upload.Content, upload.Size)
	if err != nil {
		return models.FileRecord{}, models.StorageFailure(msgUpdateStorage, err)
	}

	previous := rec.FileLocation
	rec.FileName = name
	rec.FileSize = upload.Size
	rec.FileLocation = key

	updated, err := s.MetaStorage.Update(ctx, rec)
	if err != nil {
		s.discard(ctx, "update", key)
		return models.FileRecord{}, models.PersistenceFailure(msgUpdateRecord, err)
	}

	if previous != "" && previous != key {
		s.dropPrevious(ctx, previous)
	}

	return updated, nil
}

// dropPrevious удаляет объект, на который запись больше не ссылается.
func (s *Files) dropPrevious(ctx context.Context, location string) {
	exists, err := s.BlobStorage.Exists(context.WithoutCancel(ctx), location)
	if err != nil {
		s.Logger.Warn("previous blob lookup failed",
			slog.String("location", location),
			slog.String("error", err.Error()),
		)
	}
	// При ошибке Exists всё равно пробуем удалить: Delete идемпотентен.
	if exists || err != nil {
		s.discard(ctx, "update", location)
	}
}
