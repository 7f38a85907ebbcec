package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// timeLayout is fixed width so that created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	is_completed INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL DEFAULT 'medium',
	due_date TEXT,
	category TEXT NOT NULL DEFAULT 'General',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at);
`

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

var (
	_ Store    = (*SQLiteStore)(nil)
	_ Migrator = (*SQLiteStore)(nil)
)

// sqliteRow mirrors a todos row; timestamps are stored as text.
type sqliteRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	IsCompleted bool           `db:"is_completed"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullString `db:"due_date"`
	Category    string         `db:"category"`
	CreatedAt   string         `db:"created_at"`
}

// NewSQLiteStore opens (and creates if needed) the database at path.
// Use ":memory:" for a throwaway store.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, task.Transport("create store directory", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, task.Transport("open sqlite", err)
	}
	// One connection: an in-memory database is per connection, and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, task.Transport("configure sqlite", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the todos table when missing.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return task.Transport("ensure schema", err)
	}
	return nil
}

// List returns every row ordered by created_at, newest first. Rows from the same
// batch share a timestamp and fall back to insertion order (rowid).
func (s *SQLiteStore) List(ctx context.Context) ([]task.Task, error) {
	var rows []sqliteRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, title, description, is_completed, priority, due_date, category, created_at
		FROM todos
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, task.Transport("list tasks", err)
	}

	tasks := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTask()
		if err != nil {
			return nil, task.Transport("list tasks", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r sqliteRow) toTask() (task.Task, error) {
	created, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("parse created_at of %s: %w", r.ID, err)
	}
	t := task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		IsCompleted: r.IsCompleted,
		Priority:    task.Priority(r.Priority),
		Category:    r.Category,
		CreatedAt:   created,
	}
	if r.DueDate.Valid && r.DueDate.String != "" {
		if due, err := time.Parse(timeLayout, r.DueDate.String); err == nil {
			t.DueDate = &due
		}
	}
	return t, nil
}

// Insert writes the batch atomically. Invalid drafts fail before the transaction starts.
func (s *SQLiteStore) Insert(ctx context.Context, rows []task.Draft) error {
	if len(rows) == 0 {
		return nil
	}
	drafts, err := prepareDrafts(rows)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return task.Transport("begin insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := s.now().UTC().Format(timeLayout)
	for _, d := range drafts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO todos (id, title, is_completed, priority, category, created_at)
			VALUES (?, ?, 0, ?, ?, ?)
		`, uuid.New().String(), d.Title, string(d.Priority), d.Category, createdAt); err != nil {
			return task.Transport("insert task", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return task.Transport("commit insert", err)
	}
	return nil
}

// SetCompletion updates is_completed for one row.
func (s *SQLiteStore) SetCompletion(ctx context.Context, id string, completed bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET is_completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return task.Transport("set completion", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return task.Transport("set completion", err)
	}
	if n == 0 {
		return task.Transport("set completion", fmt.Errorf("task %s: %w", id, task.ErrNotFound))
	}
	return nil
}

// Delete removes one row. A missing id is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return task.Transport("delete task", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
