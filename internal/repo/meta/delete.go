package meta

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/sir_venger/filekeeper/internal/models"
)

// Delete удаляет запись; отсутствие строки: ErrNotFound.
func (s *PGStore) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := psql.
		Delete(filesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := s.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isInvalidID(err) {
			return models.ErrNotFound
		}
		return fmt.Errorf("exec delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
