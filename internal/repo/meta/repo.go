package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore сохраняет метаданные в Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

const filesTable = "files"

// pgInvalidText: код Postgres для невалидного текстового представления (например, UUID).
const pgInvalidText = "22P02"

var (
	psql        = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	fileColumns = []string{"id", "file_name", "file_size", "file_location", "created_at", "updated_at"}
)

// NewPGStore создаёт пул подключений к Postgres и проверяет доступность базы.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("meta dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PGStore{
		pool: pool,
	}, nil
}

// Ping проверяет подключение; используется health-эндпоинтом.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close освобождает подключения пула.
func (s *PGStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// isInvalidID сообщает, что Postgres отверг идентификатор как невалидный UUID.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidText
}
