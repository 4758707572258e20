package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the stored form of a due date.
	DateLayout = "2006-01-02"
	// TimestampLayout matches the ISO form used for createdAt.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// Todo is the domain model for a todo entry.
// Field names follow the stored slot format.
type Todo struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	DueDate   string `json:"dueDate" yaml:"dueDate"`
	Completed bool   `json:"completed" yaml:"completed"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// New returns a pending todo with a fresh id.
func New(text, due string, now time.Time) Todo {
	return Todo{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		DueDate:   due,
		CreatedAt: now.UTC().Format(TimestampLayout),
	}
}

// Overdue reports whether an open todo's due date is before today.
func (t Todo) Overdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	return IsOverdue(t.DueDate, now)
}

// IsOverdue reports whether due falls strictly before local midnight of now.
// An empty or unparsable date is never overdue.
func IsOverdue(due string, now time.Time) bool {
	if due == "" {
		return false
	}
	d, err := time.ParseInLocation(DateLayout, due, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	return d.Before(today)
}

// ValidDue accepts an empty string or a YYYY-MM-DD calendar date.
func ValidDue(due string) bool {
	if due == "" {
		return true
	}
	_, err := time.Parse(DateLayout, due)
	return err == nil
}

// FormatDue renders "2024-03-05" as "03/05/24".
func FormatDue(due string) string {
	if due == "" {
		return ""
	}
	parts := strings.Split(due, "-")
	if len(parts) != 3 {
		return due
	}
	year := parts[0]
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return parts[1] + "/" + parts[2] + "/" + year
}

// Without returns a new list holding every todo except those with id.
// The input is never modified and the result is never nil.
func Without(todos []Todo, id string) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Index returns the position of id in todos, or -1.
func Index(todos []Todo, id string) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Stats counts completed and open todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
