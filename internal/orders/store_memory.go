package orders

import (
	"context"
	"slices"
	"sync"

	"MiniCart/internal/inventory"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]inventory.Order
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]inventory.Order{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, o inventory.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[o.ID]; ok {
		return ErrDuplicateOrder
	}
	o.Items = slices.Clone(o.Items)
	s.m[o.ID] = o
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (inventory.Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.m[id]
	if !ok {
		return inventory.Order{}, false, nil
	}
	o.Items = slices.Clone(o.Items)
	return o, true, nil
}
