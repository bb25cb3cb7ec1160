package repository

import (
	"context"
	"fmt"
	"sync"
)

// Memory is the in-memory Store implementation.  A single mutex serializes
// writes, so two concurrent updates to the same id never interleave, and
// every entity is passed through the clone function on the way in and out:
// callers can freely mutate what they hold without corrupting the stored
// snapshot.
type Memory[T Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	clone func(T) T
}

// NewMemory builds an empty in-memory store.  clone must return an
// independent copy of its argument; the model types provide Clone methods
// for exactly this.
func NewMemory[T Entity](clone func(T) T) *Memory[T] {
	return &Memory[T]{items: make(map[string]T), clone: clone}
}

func (m *Memory[T]) Add(_ context.Context, e T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := e.EntityID()
	if _, ok := m.items[id]; ok {
		return ErrDuplicateID
	}
	m.items[id] = m.clone(e)
	m.order = append(m.order, id)
	return nil
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return m.clone(e), nil
}

func (m *Memory[T]) Update(_ context.Context, id string, e T) error {
	// The map key and the entity's own id must stay in lockstep; a
	// mismatched call would corrupt lookups for both ids.
	if e.EntityID() != id {
		return fmt.Errorf("%w: update id %q does not match entity id %q", ErrStorage, id, e.EntityID())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	m.items[id] = m.clone(e)
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory[T]) List(_ context.Context, match func(T) bool) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		e := m.items[id]
		if match == nil || match(e) {
			out = append(out, m.clone(e))
		}
	}
	return out, nil
}
