package filesvc

import (
	"context"
	"errors"

	"github.com/sir_venger/filekeeper/internal/models"
)

const msgDestroy = "Error Deleting File. File Not Deleted."

// Destroy удаляет сначала объект, затем запись. Если не удалось удалить объект,
// запись остаётся нетронутой.
func (s *Files) Destroy(ctx context.Context, id string) error {
	rec, err := s.lookup(ctx, id, msgDestroy)
	if err != nil {
		return err
	}

	if err = s.BlobStorage.Delete(ctx, rec.FileLocation); err != nil {
		return models.StorageFailure(msgDestroy, err)
	}

	if err = s.MetaStorage.Delete(ctx, rec.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// запись успели удалить параллельным запросом
			return models.NotFound(err)
		}
		return models.PersistenceFailure(msgDestroy, err)
	}

	return nil
}
