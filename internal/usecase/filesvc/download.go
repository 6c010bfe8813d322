package filesvc

import (
	"context"
	"io"

	"github.com/sir_venger/filekeeper/internal/models"
)

const msgDownload = "Error Downloading File."

// Download открывает поток содержимого файла. Поток открывается до того, как
// вызывающий начнёт писать ответ, поэтому любой сбой ещё можно отдать статусом.
func (s *Files) Download(ctx context.Context, id string) (models.FileRecord, io.ReadCloser, error) {
	rec, err := s.lookup(ctx, id, msgDownload)
	if err != nil {
		return models.FileRecord{}, nil, err
	}

	rc, err := s.BlobStorage.Download(ctx, rec.FileLocation)
	if err != nil {
		return models.FileRecord{}, nil, models.StorageFailure(msgDownload, err)
	}

	return rec, rc, nil
}
