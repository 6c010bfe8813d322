package meta

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sir_venger/filekeeper/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	badgerFilePrefix = "file/"
	badgerSeqKey     = "seq/files"
	badgerSeqLease   = 64
)

// badgerRow: формат хранения записи в Badger (msgpack).
type badgerRow struct {
	Seq    uint64            `msgpack:"seq"`
	Record models.FileRecord `msgpack:"record"`
}

// BadgerStore хранит метаданные во встроенной базе Badger.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerStore открывает Badger в каталоге dir; пустой dir: режим только в памяти.
func NewBadgerStore(dir string, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.WithLogger(badgerLogger{logger: logger.With(slog.String("component", "badger"))})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	seq, err := db.GetSequence([]byte(badgerSeqKey), badgerSeqLease)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("badger sequence: %w", err)
	}

	return &BadgerStore{db: db, seq: seq}, nil
}

func badgerKey(id string) []byte {
	return []byte(badgerFilePrefix + id)
}

// Create сохраняет новую запись, присваивая ей id.
func (s *BadgerStore) Create(_ context.Context, rec models.FileRecord) (models.FileRecord, error) {
	n, err := s.seq.Next()
	if err != nil {
		return models.FileRecord{}, err
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	payload, err := msgpack.Marshal(badgerRow{Seq: n, Record: rec})
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("marshal record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(rec.ID), payload)
	})
	if err != nil {
		return models.FileRecord{}, err
	}

	return rec, nil
}

// Get возвращает запись по id.
func (s *BadgerStore) Get(_ context.Context, id string) (models.FileRecord, error) {
	var row badgerRow
	err := s.db.View(func(txn *badger.Txn) error {
		return readRow(txn, id, &row)
	})
	if err != nil {
		return models.FileRecord{}, err
	}
	return row.Record, nil
}

// Update перезаписывает поля файла в одной транзакции Badger.
func (s *BadgerStore) Update(_ context.Context, rec models.FileRecord) (models.FileRecord, error) {
	var row badgerRow
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := readRow(txn, rec.ID, &row); err != nil {
			return err
		}
		row.Record.FileName = rec.FileName
		row.Record.FileSize = rec.FileSize
		row.Record.FileLocation = rec.FileLocation
		row.Record.UpdatedAt = time.Now().UTC()

		payload, err := msgpack.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		return txn.Set(badgerKey(rec.ID), payload)
	})
	if err != nil {
		return models.FileRecord{}, err
	}
	return row.Record, nil
}

// Delete удаляет запись по id.
func (s *BadgerStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(badgerKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		return txn.Delete(badgerKey(id))
	})
}

// List возвращает все записи в порядке создания.
func (s *BadgerStore) List(_ context.Context) ([]models.FileRecord, error) {
	var rows []badgerRow
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerFilePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var row badgerRow
			if err := msgpack.Unmarshal(val, &row); err != nil {
				return fmt.Errorf("unmarshal %s: %w", it.Item().Key(), err)
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })
	out := make([]models.FileRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record)
	}
	return out, nil
}

func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger is closed")
	}
	return nil
}

// Close возвращает арендованный диапазон последовательности и закрывает базу.
func (s *BadgerStore) Close() error {
	return errors.Join(s.seq.Release(), s.db.Close())
}

func readRow(txn *badger.Txn, id string, row *badgerRow) error {
	item, err := txn.Get(badgerKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return msgpack.Unmarshal(val, row)
	})
}

// badgerLogger направляет журнал Badger в slog, подавляя info и debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(f, v...))
}

func (l badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(f, v...))
}

func (badgerLogger) Infof(string, ...interface{}) {}

func (badgerLogger) Debugf(string, ...interface{}) {}
