package meta

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sir_venger/filekeeper/internal/models"
)

// List возвращает все записи в порядке создания.
func (s *PGStore) List(ctx context.Context) ([]models.FileRecord, error) {
	sqlStr, args, err := psql.
		Select(fileColumns...).
		From(filesTable).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FileRecord, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect files: %w", err)
	}
	if out == nil {
		out = []models.FileRecord{}
	}

	return out, nil
}
