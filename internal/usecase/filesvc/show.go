package filesvc

import (
	"context"

	"github.com/sir_venger/filekeeper/internal/models"
)

// Show возвращает запись без обращения к блоб-хранилищу.
func (s *Files) Show(ctx context.Context, id string) (models.FileRecord, error) {
	return s.lookup(ctx, id, "Error Retrieving File.")
}
