package meta

import (
	"context"
	"errors"
	"testing"

	"github.com/sir_venger/filekeeper/internal/models"
)

// runStoreSuite проверяет общий контракт Store на конкретном бэкенде.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("CreateGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, models.FileRecord{FileName: "report.pdf", FileSize: 1024, FileLocation: "files/a/report.pdf"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == "" {
			t.Fatal("store did not assign an id")
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Fatalf("timestamps not set: %+v", created)
		}

		got, err := s.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.FileName != "report.pdf" || got.FileSize != 1024 || got.FileLocation != "files/a/report.pdf" {
			t.Fatalf("unexpected record %+v", got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		_, err = s.Get(context.Background(), "not-a-uuid")
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
		}
	})

	t.Run("UpdateKeepsID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, models.FileRecord{FileName: "a.txt", FileSize: 1, FileLocation: "files/1/a.txt"})
		if err != nil {
			t.Fatal(err)
		}
		updated, err := s.Update(ctx, models.FileRecord{ID: created.ID, FileName: "b.txt", FileSize: 2, FileLocation: "files/2/b.txt"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != created.ID || updated.FileName != "b.txt" || updated.FileSize != 2 || updated.FileLocation != "files/2/b.txt" {
			t.Fatalf("unexpected update result %+v", updated)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("created_at changed: %s -> %s", created.CreatedAt, updated.CreatedAt)
		}

		got, err := s.Get(ctx, created.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.FileName != "b.txt" {
			t.Fatalf("update not persisted: %+v", got)
		}

		_, err = s.Update(ctx, models.FileRecord{ID: "00000000-0000-0000-0000-000000000000", FileName: "x", FileLocation: "x"})
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteAndList", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []string
		for _, name := range []string{"one", "two", "three"} {
			rec, err := s.Create(ctx, models.FileRecord{FileName: name, FileSize: 3, FileLocation: "files/" + name})
			if err != nil {
				t.Fatal(err)
			}
			ids = append(ids, rec.ID)
		}

		list, err := s.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 records, got %d", len(list))
		}
		for i, rec := range list {
			if rec.ID != ids[i] {
				t.Fatalf("list not in creation order: %v", list)
			}
		}

		if err := s.Delete(ctx, ids[1]); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := s.Delete(ctx, ids[1]); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("second delete: expected ErrNotFound, got %v", err)
		}
		if _, err := s.Get(ctx, ids[1]); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("deleted record still visible: %v", err)
		}

		list, err = s.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 2 || list[0].ID != ids[0] || list[1].ID != ids[2] {
			t.Fatalf("unexpected list after delete: %v", list)
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		s := newStore(t)
		list, err := s.List(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if list == nil || len(list) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", list)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestBadgerStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewBadgerStore("", nil)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestBadgerStore_ReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewBadgerStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := s.Create(ctx, models.FileRecord{FileName: "keep.bin", FileSize: 7, FileLocation: "files/k/keep.bin"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewBadgerStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.FileName != "keep.bin" || got.FileSize != 7 {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory://", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("memory dsn opened %T", s)
	}

	s, err = Open(ctx, "badger://memory", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*BadgerStore); !ok {
		t.Fatalf("badger dsn opened %T", s)
	}
	_ = s.Close()

	for _, dsn := range []string{"", "badger://", "mysql://root@db/files"} {
		if _, err := Open(ctx, dsn, nil); err == nil {
			t.Fatalf("expected error for dsn %q", dsn)
		}
	}

	if !IsPostgres("postgresql://u@db/files") || IsPostgres("memory://") {
		t.Fatal("IsPostgres misclassified dsn")
	}
}
