package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/domain"
)

func TestRepository_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := New()

	a, err := domain.NewTask(1, "A")
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if err := repo.CreateTask(ctx, a); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	b, _ := domain.NewTask(2, "B")
	if err := repo.CreateTask(ctx, b); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if err := repo.CreateTask(ctx, b); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}

	a, err = repo.GetTask(ctx, 1)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if err := repo.UpdateTask(ctx, a.Toggled()); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 2 || tasks[0].Text != "A" || tasks[1].Text != "B" {
		t.Fatalf("unexpected order %#v", tasks)
	}
	if !tasks[0].Completed || tasks[1].Completed {
		t.Fatalf("unexpected completion flags %#v", tasks)
	}

	if err := repo.DeleteTask(ctx, 1); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	tasks, _ = repo.ListTasks(ctx)
	if len(tasks) != 1 || tasks[0].ID != 2 {
		t.Fatalf("unexpected tasks after delete %#v", tasks)
	}
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if _, err := repo.GetTask(ctx, 9); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from GetTask, got %v", err)
	}
	if err := repo.UpdateTask(ctx, domain.Task{ID: 9, Text: "x"}); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from UpdateTask, got %v", err)
	}
	if err := repo.DeleteTask(ctx, 9); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from DeleteTask, got %v", err)
	}
}

func TestRepository_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := New()
	task, _ := domain.NewTask(1, "A")
	_ = repo.CreateTask(ctx, task)

	tasks, _ := repo.ListTasks(ctx)
	tasks[0].Text = "mutated"

	again, _ := repo.ListTasks(ctx)
	if again[0].Text != "A" {
		t.Fatalf("expected repository state to be isolated, got %q", again[0].Text)
	}
}
