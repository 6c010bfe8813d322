package blob

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// StorageAdapter описывает источник знаний о доступности стораджей.
type StorageAdapter interface {
	Available(ctx context.Context, storages []string) []string
}

// Router отвечает за выбор стораджей для записи файлов.
type Router struct {
	mu             sync.Mutex
	configured     []string
	next           int
	StorageAdapter StorageAdapter
}

// NewRouter создаёт маршрутизатор с адаптером доступности.
func NewRouter(adapter StorageAdapter) *Router {
	return &Router{StorageAdapter: adapter}
}

// Set заменяет список стораджей на новый.
func (r *Router) Set(storages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configured = nil
	r.next = 0
	r.addLocked(storages)
}

// Add добавляет новые стораджи, игнорируя дубликаты и пустые значения.
func (r *Router) Add(storages ...string) {
	if len(storages) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(storages)
}

func (r *Router) addLocked(storages []string) {
	known := make(map[string]struct{}, len(r.configured))
	for _, s := range r.configured {
		known[s] = struct{}{}
	}

	for _, storage := range storages {
		storage = strings.TrimRight(strings.TrimSpace(storage), "/")
		if storage == "" {
			continue
		}

		if _, exists := known[storage]; exists {
			continue
		}

		r.configured = append(r.configured, storage)
		known[storage] = struct{}{}
	}
}

// Storages возвращает копию текущего списка стораджей.
func (r *Router) Storages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.configured...)
}

// Allocate возвращает список стораджей длиной count.
// Если ни один сторадж не прошёл проверку доступности, выбор идёт из всех настроенных.
func (r *Router) Allocate(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}

	snapshot := r.Storages()
	if len(snapshot) == 0 {
		return nil, ErrNoStorage
	}

	available := snapshot
	if r.StorageAdapter != nil {
		if ready := r.StorageAdapter.Available(ctx, snapshot); len(ready) > 0 {
			available = ready
		}
	}

	r.mu.Lock()
	start := r.next % len(available)
	r.next = (start + count) % len(available)
	r.mu.Unlock()

	result := make([]string, count)
	for i := 0; i < count; i++ {
		result[i] = available[(start+i)%len(available)]
	}

	return result, nil
}
