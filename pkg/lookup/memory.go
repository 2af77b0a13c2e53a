package lookup

import (
	"context"
	"sync"
)

// MemorySet is an in-memory Checker. The zero value is not usable; call
// NewMemorySet.
type MemorySet struct {
	mu     sync.RWMutex
	values map[string]struct{}
	opts   options
}

// NewMemorySet creates a set holding values.
func NewMemorySet(values []string, opts ...Option) *MemorySet {
	s := &MemorySet{values: make(map[string]struct{}, len(values)), opts: newOptions(opts)}
	s.Add(values...)
	return s
}

// Add inserts values into the set.
func (s *MemorySet) Add(values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		s.values[s.opts.key(v)] = struct{}{}
	}
}

// Remove deletes values from the set.
func (s *MemorySet) Remove(values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		delete(s.values, s.opts.key(v))
	}
}

// Len returns the number of distinct values.
func (s *MemorySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Exists reports whether value is in the set.
func (s *MemorySet) Exists(ctx context.Context, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[s.opts.key(value)]
	return ok, nil
}
