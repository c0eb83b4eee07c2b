package app

import "github.com/hylla/taskboard/internal/domain"

// Summary holds the counts derived from the task collection.
type Summary struct {
	Total     int
	Completed int
}

// Pending returns the number of tasks not yet completed.
func (s Summary) Pending() int {
	return s.Total - s.Completed
}

// Snapshot is a point-in-time copy of the board used to render views.
type Snapshot struct {
	Tasks   []domain.Task
	Summary Summary
}

// Empty reports whether the board holds no tasks.
func (s Snapshot) Empty() bool {
	return len(s.Tasks) == 0
}

// Summarize derives counts from tasks.
func Summarize(tasks []domain.Task) Summary {
	out := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			out.Completed++
		}
	}
	return out
}

// newSnapshot copies tasks so callers cannot alias repository state.
func newSnapshot(tasks []domain.Task) Snapshot {
	copied := append([]domain.Task(nil), tasks...)
	return Snapshot{
		Tasks:   copied,
		Summary: Summarize(copied),
	}
}
