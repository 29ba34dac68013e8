package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/portcfg/pkg/domain"
)

// Store implements ports.PortStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.PortEntity
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with entities.
func NewStore(seed ...*domain.PortEntity) *Store {
	s := &Store{
		data: make(map[string]*domain.PortEntity),
	}
	for _, entity := range seed {
		s.data[entity.ID] = entity.Clone()
	}
	return s
}

// Set replaces the cached entity.
func (s *Store) Set(ctx context.Context, entity *domain.PortEntity) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := entity.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[entity.ID] = copied
	return nil
}

// Get retrieves the entity from memory.
func (s *Store) Get(ctx context.Context, id string) (*domain.PortEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.data[id]
	if !ok {
		return nil, domain.ErrPortNotFound
	}

	// Copy on read so caller can't mutate store state directly by pointer
	return entity.Clone(), nil
}

// Delete removes the entity.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the cached port ids in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
