package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sir_venger/filekeeper/internal/models"
)

// Get возвращает описание файла по его идентификатору.
func (s *PGStore) Get(ctx context.Context, id string) (models.FileRecord, error) {
	if strings.TrimSpace(id) == "" {
		return models.FileRecord{}, models.ErrNotFound
	}

	sqlStr, args, err := psql.
		Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("build select: %w", err)
	}

	rec, err := scanRecord(s.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return models.FileRecord{}, models.ErrNotFound
		}
		return models.FileRecord{}, fmt.Errorf("scan file row: %w", err)
	}

	return rec, nil
}

// scanRecord читает строку в порядке fileColumns.
func scanRecord(row pgx.Row) (models.FileRecord, error) {
	var rec models.FileRecord
	err := row.Scan(&rec.ID, &rec.FileName, &rec.FileSize, &rec.FileLocation, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}
