package domain

import "strings"

// Task is one to-do item on the board. Values are never mutated in place;
// state changes produce a new Task.
type Task struct {
	ID        int64
	Text      string
	Completed bool
}

// NewTask validates input and builds a new, not yet completed task.
// The raw text is kept as typed; only emptiness is checked on the trimmed value.
func NewTask(id int64, text string) (Task, error) {
	if id <= 0 {
		return Task{}, ErrInvalidID
	}
	if strings.TrimSpace(text) == "" {
		return Task{}, ErrInvalidText
	}
	return Task{
		ID:   id,
		Text: text,
	}, nil
}

// Toggled returns a copy with the completed flag inverted.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// IsBlankText reports whether text would be rejected by NewTask.
func IsBlankText(text string) bool {
	return strings.TrimSpace(text) == ""
}
