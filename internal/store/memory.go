package store

import (
	"context"
	"slices"
	"sync"

	"manoscerca.app/internal/models"
)

// MemoryStore is a thread-safe in-process Store. Records are lost when the
// process exits. It backs tests and the "memory" storage engine.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	order  []int64
	data   map[int64]models.Provider
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int64]models.Provider)}
}

func (s *MemoryStore) Add(ctx context.Context, p models.Provider) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &WriteError{Op: "add", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.data[p.ID] = p
	s.order = append(s.order, p.ID)
	return p.ID, nil
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Op: "get_all", Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Provider, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return models.Provider{}, &ReadError{Op: "get", Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[id]
	if !ok {
		return models.Provider{}, ErrNotFound
	}
	return p, nil
}

// Update stores p under p.ID. An id above the current counter moves the
// counter forward so Add never hands it out again.
func (s *MemoryStore) Update(ctx context.Context, p models.Provider) error {
	if p.ID == 0 {
		return &WriteError{Op: "update", Err: ErrMissingID}
	}
	if err := ctx.Err(); err != nil {
		return &WriteError{Op: "update", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.data[p.ID] = p
	if p.ID > s.nextID {
		s.nextID = p.ID
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Op: "delete", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return nil
	}
	delete(s.data, id)
	s.order = slices.DeleteFunc(s.order, func(v int64) bool { return v == id })
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Op: "clear", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[int64]models.Provider)
	s.order = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }
