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

// Create вставляет новую запись; id и отметки времени выдаёт база.
func (s *PGStore) Create(ctx context.Context, rec models.FileRecord) (models.FileRecord, error) {
	sqlStr, args, err := psql.
		Insert(filesTable).
		Columns("file_name", "file_size", "file_location").
		Values(rec.FileName, rec.FileSize, rec.FileLocation).
		Suffix("RETURNING " + strings.Join(fileColumns, ", ")).
		ToSql()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanRecord(s.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("exec insert: %w", err)
	}

	return created, nil
}

// Update перезаписывает имя, размер и расположение файла, id не меняется.
func (s *PGStore) Update(ctx context.Context, rec models.FileRecord) (models.FileRecord, error) {
	sqlStr, args, err := psql.
		Update(filesTable).
		Set("file_name", rec.FileName).
		Set("file_size", rec.FileSize).
		Set("file_location", rec.FileLocation).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": rec.ID}).
		Suffix("RETURNING " + strings.Join(fileColumns, ", ")).
		ToSql()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanRecord(s.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return models.FileRecord{}, models.ErrNotFound
		}
		return models.FileRecord{}, fmt.Errorf("exec update: %w", err)
	}

	return updated, nil
}
