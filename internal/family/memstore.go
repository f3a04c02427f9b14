package family

import (
	"context"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu     sync.RWMutex
	people map[string]Person
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		people: make(map[string]Person),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddPerson stores a record keyed by its id, replacing any previous record.
func (m *MemStore) AddPerson(_ context.Context, p Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.ID] = clonePerson(p)
	return nil
}

// GetPerson returns the record for id, or nil if not found.
func (m *MemStore) GetPerson(_ context.Context, id string) (*Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.people[id]
	if !ok {
		return nil, nil
	}
	cp := clonePerson(p)
	return &cp, nil
}

// ListPersons returns every record ordered by id.
func (m *MemStore) ListPersons(_ context.Context) ([]Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Person, 0, len(m.people))
	for _, p := range m.people {
		out = append(out, clonePerson(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Stats counts records and reconciled edges.
func (m *MemStore) Stats(ctx context.Context) (*GraphStats, error) {
	people, err := m.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	stats := NewGraph(people).Stats()
	return &stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
