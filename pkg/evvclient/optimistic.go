package evvclient

import "sync"

// Store holds a cached value mutated through an explicit
// snapshot/apply/rollback protocol. Each mutation operates on a snapshot
// taken at its own start, so concurrent mutations do not share partial
// state; the last rollback or commit wins.
type Store[T any] struct {
	mu    sync.Mutex
	value T
	clone func(T) T
}

// NewStore creates a store. clone must produce a deep copy; snapshots and
// reads rely on it to keep callers from aliasing the stored value.
func NewStore[T any](initial T, clone func(T) T) *Store[T] {
	return &Store[T]{
		value: clone(initial),
		clone: clone,
	}
}

func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone(s.value)
}

func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = s.clone(value)
}

// Mutation is one optimistic update in flight. It owns the snapshot taken
// when it began.
type Mutation[T any] struct {
	store    *Store[T]
	snapshot T
}

// Begin snapshots the current value and returns the mutation handle.
func (s *Store[T]) Begin() *Mutation[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Mutation[T]{
		store:    s,
		snapshot: s.clone(s.value),
	}
}

// Apply replaces the stored value with fn's result. fn receives a private
// copy and may mutate it freely.
func (m *Mutation[T]) Apply(fn func(T) T) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.value = fn(m.store.clone(m.store.value))
}

// Rollback restores the exact snapshot taken at Begin.
func (m *Mutation[T]) Rollback() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.value = m.snapshot
}
