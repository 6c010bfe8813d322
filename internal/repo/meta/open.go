package meta

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sir_venger/filekeeper/internal/models"
)

// Store: полный контракт хранилища записей, который реализуют все бэкенды.
type Store interface {
	Create(ctx context.Context, rec models.FileRecord) (models.FileRecord, error)
	Get(ctx context.Context, id string) (models.FileRecord, error)
	Update(ctx context.Context, rec models.FileRecord) (models.FileRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.FileRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
	_ Store = (*PGStore)(nil)
)

const (
	schemeMemory   = "memory://"
	schemeBadger   = "badger://"
	badgerInMemory = "memory"
)

// Open выбирает бэкенд по схеме DSN:
//   - memory://           : go-memdb в памяти процесса;
//   - badger:///path/dir  : Badger на диске (badger://memory: в памяти);
//   - postgres://, postgresql://: Postgres.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (Store, error) {
	dsn = strings.TrimSpace(dsn)

	switch {
	case dsn == "":
		return nil, fmt.Errorf("meta dsn is empty")
	case strings.HasPrefix(dsn, schemeMemory):
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, schemeBadger):
		dir := strings.TrimPrefix(dsn, schemeBadger)
		if dir == badgerInMemory {
			dir = ""
		} else if dir == "" {
			return nil, fmt.Errorf("badger dsn %q has no directory", dsn)
		}
		return NewBadgerStore(dir, logger)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPGStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported meta dsn %q", dsn)
	}
}

// IsPostgres сообщает, что DSN указывает на Postgres и требует миграций.
func IsPostgres(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
