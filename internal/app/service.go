package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hylla/taskboard/internal/domain"
)

// Observer receives every successful mutation together with the resulting board state.
// Observers run synchronously before the mutating call returns and must not
// call back into the Service.
type Observer func(domain.ChangeEvent, Snapshot)

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	Observers []Observer
}

// Service owns the task collection and is the only writer of the repository.
type Service struct {
	mu        sync.Mutex
	repo      Repository
	idGen     IDGenerator
	observers []Observer
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = NewMonotonicIDGenerator(nil)
	}
	observers := make([]Observer, 0, len(cfg.Observers))
	for _, observer := range cfg.Observers {
		if observer != nil {
			observers = append(observers, observer)
		}
	}
	return &Service{
		repo:      repo,
		idGen:     idGen,
		observers: observers,
	}
}

// Subscribe registers an observer for later mutations.
func (s *Service) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// AddTask appends a task built from text. Blank text is a silent no-op and
// reports false without an error.
func (s *Service) AddTask(ctx context.Context, text string) (domain.Task, bool, error) {
	if domain.IsBlankText(text) {
		return domain.Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := domain.NewTask(s.idGen(), text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidText) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, err
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return domain.Task{}, false, fmt.Errorf("create task: %w", err)
	}
	if err := s.notify(ctx, domain.ChangeEvent{Operation: domain.ChangeOperationCreate, Task: task}); err != nil {
		return task, true, err
	}
	return task, true, nil
}

// ToggleTask replaces the task with its toggled copy in place. Unknown ids
// are a silent no-op.
func (s *Service) ToggleTask(ctx context.Context, id int64) (domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, fmt.Errorf("get task %d: %w", id, err)
	}
	toggled := current.Toggled()
	if err := s.repo.UpdateTask(ctx, toggled); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, fmt.Errorf("update task %d: %w", id, err)
	}
	if err := s.notify(ctx, domain.ChangeEvent{Operation: domain.ChangeOperationToggle, Task: toggled}); err != nil {
		return toggled, true, err
	}
	return toggled, true, nil
}

// DeleteTask removes the task with id. Unknown ids are a silent no-op.
func (s *Service) DeleteTask(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get task %d: %w", id, err)
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete task %d: %w", id, err)
	}
	if err := s.notify(ctx, domain.ChangeEvent{Operation: domain.ChangeOperationDelete, Task: removed}); err != nil {
		return true, err
	}
	return true, nil
}

// ListTasks returns the collection in insertion order.
func (s *Service) ListTasks(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Snapshot returns the collection with its derived summary.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(ctx)
}

// snapshotLocked reads the collection; callers hold s.mu.
func (s *Service) snapshotLocked(ctx context.Context) (Snapshot, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list tasks: %w", err)
	}
	return newSnapshot(tasks), nil
}

// notify fans one change out to observers; callers hold s.mu. The write it
// reports has already committed, so mutators return their result alongside
// any error from here.
func (s *Service) notify(ctx context.Context, event domain.ChangeEvent) error {
	if len(s.observers) == 0 {
		return nil
	}
	snap, err := s.snapshotLocked(ctx)
	if err != nil {
		return fmt.Errorf("notify %s: %w", event.Operation, err)
	}
	for _, observer := range s.observers {
		observer(event, snap)
	}
	return nil
}
