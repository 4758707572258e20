// Package store persists the todo list as one JSON blob under a single key
// of a key/value slot.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// Key is the slot key holding the serialized list.
const Key = "todos"

// ErrMalformed marks a stored value that is not a valid todo list.
// Load reports it and leaves the stored value untouched.
var ErrMalformed = errors.New("malformed todo list")

// Slot is a persistent key/value backend.
type Slot interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value for key.
	Set(key, value string) error
}

// Store reads and writes the whole list against one slot key.
type Store struct {
	slot Slot
	key  string
}

// New returns a Store bound to Key on slot.
func New(slot Slot) *Store {
	return &Store{slot: slot, key: Key}
}

// Load returns the stored list; a missing or empty slot is an empty list.
func (s *Store) Load() ([]model.Todo, error) {
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	if !ok || raw == "" {
		return []model.Todo{}, nil
	}
	if problems := Inspect([]byte(raw)); len(problems) > 0 {
		for _, p := range problems {
			if p.Fatal {
				return nil, fmt.Errorf("%w: %s", ErrMalformed, p)
			}
		}
	}
	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return todos, nil
}

// Save serializes todos and overwrites the slot.
func (s *Store) Save(todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.slot.Set(s.key, string(b)); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

// Check inspects the stored value without decoding it into todos.
func (s *Store) Check() ([]Problem, error) {
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	return Inspect([]byte(raw)), nil
}
