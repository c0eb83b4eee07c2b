package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository stores the task collection in a private in-memory sqlite database.
// Nothing is written to disk; the data is gone once Close is called or the process exits.
type Repository struct {
	db *sql.DB
}

// OpenInMemory opens a named in-memory database. The name keeps concurrent
// sessions in one process apart.
func OpenInMemory(name string) (*Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("sqlite memory database name is required")
	}
	db, err := sql.Open(driverName, memoryDSN(name))
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// A memory database lives only as long as a connection to it; pin one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// memoryDSN builds the connection string for a named memory database.
func memoryDSN(name string) string {
	return "file:" + url.PathEscape(name) + "?mode=memory&cache=shared"
}

// Close closes the requested operation.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate handles migrate.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id INTEGER NOT NULL UNIQUE,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// CreateTask appends task; seq keeps insertion order.
func (r *Repository) CreateTask(ctx context.Context, task domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks(id, text, completed)
		VALUES(?, ?, ?)
	`, task.ID, task.Text, boolToInt(task.Completed))
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// UpdateTask rewrites the row for task.ID without touching its position.
func (r *Repository) UpdateTask(ctx context.Context, task domain.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET text = ?, completed = ?
		WHERE id = ?
	`, task.Text, boolToInt(task.Completed), task.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return translateNoRows(res)
}

// GetTask returns task.
func (r *Repository) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, text, completed
		FROM tasks
		WHERE id = ?
	`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// ListTasks lists tasks in insertion order.
func (r *Repository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, completed
		FROM tasks
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// DeleteTask deletes task.
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return translateNoRows(res)
}

// scanner represents scanner data used by this package.
type scanner interface {
	Scan(dest ...any) error
}

// scanTask scans task.
func scanTask(s scanner) (domain.Task, error) {
	var (
		task      domain.Task
		completed int
	)
	if err := s.Scan(&task.ID, &task.Text, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, err
		}
		return domain.Task{}, fmt.Errorf("scan task: %w", err)
	}
	task.Completed = completed != 0
	return task, nil
}

// translateNoRows maps zero affected rows to app.ErrNotFound.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// boolToInt handles bool to int.
func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
