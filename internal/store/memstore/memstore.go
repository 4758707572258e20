// Package memstore is an in-process slot, used as the substitutable fake in tests.
package memstore

import "sync"

// Slot is a map-backed key/value slot that counts writes.
type Slot struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
}

// New returns an empty Slot.
func New() *Slot {
	return &Slot{data: map[string]string{}}
}

func (s *Slot) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Slot) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
