// Package service implements the todo operations other than deletion.
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

var (
	ErrNotFound   = errors.New("todo not found")
	ErrAmbiguous  = errors.New("ambiguous todo reference")
	ErrEmptyText  = errors.New("text cannot be empty")
	ErrInvalidDue = errors.New("due date must be YYYY-MM-DD")
)

// Store is the persistence boundary.
type Store interface {
	Load() ([]model.Todo, error)
	Save([]model.Todo) error
}

// Service reads the whole list, changes it, and writes it back once.
type Service struct {
	store Store
	now   func() time.Time
}

// New returns a Service using the wall clock.
func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock returns a copy of s using now for timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now
	return &c
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// List returns the stored todos in insertion order.
func (s *Service) List() ([]model.Todo, error) {
	return s.store.Load()
}

// Add appends a new todo.
func (s *Service) Add(text, due string) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, ErrEmptyText
	}
	due = strings.TrimSpace(due)
	if !model.ValidDue(due) {
		return model.Todo{}, fmt.Errorf("%w: %q", ErrInvalidDue, due)
	}
	todos, err := s.store.Load()
	if err != nil {
		return model.Todo{}, err
	}
	t := model.New(text, due, s.now())
	if err := s.store.Save(append(todos, t)); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

// Edit replaces the text of the todo with id.
func (s *Service) Edit(id, text string) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, ErrEmptyText
	}
	return s.update(id, func(t *model.Todo) { t.Text = text })
}

// SetDue sets or, with an empty due, clears the due date.
func (s *Service) SetDue(id, due string) (model.Todo, error) {
	due = strings.TrimSpace(due)
	if !model.ValidDue(due) {
		return model.Todo{}, fmt.Errorf("%w: %q", ErrInvalidDue, due)
	}
	return s.update(id, func(t *model.Todo) { t.DueDate = due })
}

// Toggle flips the completed flag.
func (s *Service) Toggle(id string) (model.Todo, error) {
	return s.update(id, func(t *model.Todo) { t.Completed = !t.Completed })
}

func (s *Service) update(id string, fn func(*model.Todo)) (model.Todo, error) {
	todos, err := s.store.Load()
	if err != nil {
		return model.Todo{}, err
	}
	i := model.Index(todos, id)
	if i < 0 {
		return model.Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fn(&todos[i])
	if err := s.store.Save(todos); err != nil {
		return model.Todo{}, err
	}
	return todos[i], nil
}

// Resolve maps a user reference to an id. A reference is a full id, a
// 1-based index, or a prefix matching exactly one id, tried in that order.
func (s *Service) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	todos, err := s.store.Load()
	if err != nil {
		return "", err
	}
	// Ids are opaque and may be all digits, so an exact id wins over an index.
	if i := model.Index(todos, ref); i >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(todos) {
			return "", fmt.Errorf("%w: index out of range: have %d, got %d", ErrNotFound, len(todos), n)
		}
		return todos[n-1].ID, nil
	}
	var match string
	for _, t := range todos {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}
