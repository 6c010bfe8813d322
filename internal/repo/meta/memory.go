package meta

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	memdb "github.com/hashicorp/go-memdb"
	"github.com/sir_venger/filekeeper/internal/models"
)

const memTable = "files"

var memSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		memTable: {
			Name: memTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		},
	},
}

// memRow: запись в memdb; Seq фиксирует порядок создания для List.
type memRow struct {
	models.FileRecord
	Seq uint64
}

// MemoryStore хранит метаданные только в оперативной памяти; удобно для тестов.
type MemoryStore struct {
	db  *memdb.MemDB
	seq atomic.Uint64
}

// NewMemoryStore создаёт пустое in-memory хранилище.
func NewMemoryStore() *MemoryStore {
	db, err := memdb.NewMemDB(memSchema)
	if err != nil {
		// схема статическая, ошибка здесь: баг в memSchema
		panic(err)
	}
	return &MemoryStore{db: db}
}

// Create сохраняет новую запись, присваивая ей id.
func (s *MemoryStore) Create(_ context.Context, rec models.FileRecord) (models.FileRecord, error) {
	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(memTable, &memRow{FileRecord: rec, Seq: s.seq.Add(1)}); err != nil {
		return models.FileRecord{}, err
	}
	txn.Commit()

	return rec, nil
}

// Get возвращает метаданные файла по id или ошибку, если файл не найден.
func (s *MemoryStore) Get(_ context.Context, id string) (models.FileRecord, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memTable, "id", id)
	if err != nil {
		return models.FileRecord{}, err
	}
	if raw == nil {
		return models.FileRecord{}, models.ErrNotFound
	}
	return raw.(*memRow).FileRecord, nil
}

// Update перезаписывает поля файла, сохраняя id и время создания.
func (s *MemoryStore) Update(_ context.Context, rec models.FileRecord) (models.FileRecord, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(memTable, "id", rec.ID)
	if err != nil {
		return models.FileRecord{}, err
	}
	if raw == nil {
		return models.FileRecord{}, models.ErrNotFound
	}

	// объекты в memdb неизменяемы: кладём копию
	row := *raw.(*memRow)
	row.FileName = rec.FileName
	row.FileSize = rec.FileSize
	row.FileLocation = rec.FileLocation
	row.UpdatedAt = time.Now().UTC()
	if err := txn.Insert(memTable, &row); err != nil {
		return models.FileRecord{}, err
	}
	txn.Commit()

	return row.FileRecord, nil
}

// Delete удаляет запись по id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(memTable, "id", id)
	if err != nil {
		return err
	}
	if raw == nil {
		return models.ErrNotFound
	}
	if err := txn.Delete(memTable, raw); err != nil {
		return err
	}
	txn.Commit()

	return nil
}

// List возвращает все записи в порядке создания.
func (s *MemoryStore) List(_ context.Context) ([]models.FileRecord, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memTable, "id")
	if err != nil {
		return nil, err
	}

	var rows []*memRow
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rows = append(rows, raw.(*memRow))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })

	out := make([]models.FileRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.FileRecord)
	}
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
