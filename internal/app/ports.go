package app

import (
	"context"

	"github.com/hylla/taskboard/internal/domain"
)

// Repository stores the ordered task collection for one session.
// Implementations must keep insertion order and report ErrNotFound for unknown ids.
type Repository interface {
	CreateTask(context.Context, domain.Task) error
	UpdateTask(context.Context, domain.Task) error
	GetTask(context.Context, int64) (domain.Task, error)
	ListTasks(context.Context) ([]domain.Task, error)
	DeleteTask(context.Context, int64) error
}
