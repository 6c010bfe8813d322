package filesvc

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/sir_venger/filekeeper/internal/models"
)

type (
	// MetaStorage хранилище записей о файлах
	MetaStorage interface {
		Create(ctx context.Context, rec models.FileRecord) (models.FileRecord, error)
		Get(ctx context.Context, id string) (models.FileRecord, error)
		Update(ctx context.Context, rec models.FileRecord) (models.FileRecord, error)
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]models.FileRecord, error)
	}

	// BlobStorage хранилище содержимого файлов.
	// Put возвращает фактический ключ, который может отличаться от переданного.
	BlobStorage interface {
		Put(ctx context.Context, key string, r io.Reader, size int64) (string, error)
		Exists(ctx context.Context, key string) (bool, error)
		Delete(ctx context.Context, keys ...string) error
		Download(ctx context.Context, key string) (io.ReadCloser, error)
	}

	// Service объединяет операции над файлами.
	Service interface {
		List(ctx context.Context) ([]models.FileRecord, error)
		Create(ctx context.Context, upload models.Upload) (models.FileRecord, error)
		Show(ctx context.Context, id string) (models.FileRecord, error)
		Download(ctx context.Context, id string) (models.FileRecord, io.ReadCloser, error)
		Update(ctx context.Context, id string, upload models.Upload) (models.FileRecord, error)
		Destroy(ctx context.Context, id string) error
	}
)

type Deps struct {
	MetaStorage MetaStorage
	BlobStorage BlobStorage
	KeyPrefix   string
	Logger      *slog.Logger
}

type Files struct {
	Deps
}

// New конструирует сервис файлов с заданными зависимостями.
func New(deps Deps) *Files {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// lookup достаёт запись, отделяя «нет такой» от сбоя хранилища.
func (s *Files) lookup(ctx context.Context, id, failMsg string) (models.FileRecord, error) {
	rec, err := s.MetaStorage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.FileRecord{}, models.NotFound(err)
		}
		return models.FileRecord{}, models.PersistenceFailure(failMsg, err)
	}
	return rec, nil
}
