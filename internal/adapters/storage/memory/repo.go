package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/domain"
)

// Repository keeps the task collection in a slice for the life of the process.
type Repository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{}
}

// CreateTask appends task to the end of the collection.
func (r *Repository) CreateTask(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(task.ID) >= 0 {
		return fmt.Errorf("task %d already exists", task.ID)
	}
	r.tasks = append(r.tasks, task)
	return nil
}

// UpdateTask replaces the task with the same id at its current position.
func (r *Repository) UpdateTask(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(task.ID)
	if idx < 0 {
		return app.ErrNotFound
	}
	next := make([]domain.Task, len(r.tasks))
	copy(next, r.tasks)
	next[idx] = task
	r.tasks = next
	return nil
}

// GetTask returns the task with id.
func (r *Repository) GetTask(_ context.Context, id int64) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Task{}, app.ErrNotFound
	}
	return r.tasks[idx], nil
}

// ListTasks returns a copy of the collection in insertion order.
func (r *Repository) ListTasks(context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

// DeleteTask removes the task with id and keeps the order of the rest.
func (r *Repository) DeleteTask(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return app.ErrNotFound
	}
	next := make([]domain.Task, 0, len(r.tasks)-1)
	next = append(next, r.tasks[:idx]...)
	next = append(next, r.tasks[idx+1:]...)
	r.tasks = next
	return nil
}

// indexOf returns the slice index for id or -1; callers hold r.mu.
func (r *Repository) indexOf(id int64) int {
	for idx, task := range r.tasks {
		if task.ID == id {
			return idx
		}
	}
	return -1
}
