package filesvc

import (
	"context"

	"github.com/sir_venger/filekeeper/internal/models"
)

// List возвращает все записи в порядке создания.
func (s *Files) List(ctx context.Context) ([]models.FileRecord, error) {
	recs, err := s.MetaStorage.List(ctx)
	if err != nil {
		return nil, models.PersistenceFailure("Error Listing Files.", err)
	}
	if recs == nil {
		recs = []models.FileRecord{}
	}
	return recs, nil
}
