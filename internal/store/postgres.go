package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// PostgresStore implements Store on a hosted Postgres database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ Store    = (*PostgresStore)(nil)
	_ Migrator = (*PostgresStore)(nil)
)

// NewPostgresStore connects a pool to dsn and checks it is reachable.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is empty (set store.dsn or DATABASE_URL)")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, task.Transport("connect postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, task.Transport("ping postgres", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the todos table when missing. The seq column breaks
// created_at ties between rows of one batch.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("postgres store not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + Table + ` (
    id           UUID PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    is_completed BOOLEAN NOT NULL DEFAULT false,
    priority     TEXT NOT NULL DEFAULT 'medium',
    due_date     TIMESTAMPTZ,
    category     TEXT NOT NULL DEFAULT 'General',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    seq          BIGSERIAL
)`,
		`ALTER TABLE ` + Table + ` ADD COLUMN IF NOT EXISTS seq BIGSERIAL`,
		`CREATE INDEX IF NOT EXISTS idx_todos_created ON ` + Table + ` (created_at DESC, seq DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return task.Transport("ensure schema", err)
		}
	}
	return nil
}

// List returns every row, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]task.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, title, description, is_completed, priority, due_date, category, created_at
		FROM `+Table+`
		ORDER BY created_at DESC, seq DESC
	`)
	if err != nil {
		return nil, task.Transport("list tasks", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			t        task.Task
			priority string
			due      *time.Time
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &priority, &due, &t.Category, &t.CreatedAt); err != nil {
			return nil, task.Transport("scan task", err)
		}
		t.Priority = task.Priority(priority)
		t.DueDate = due
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, task.Transport("list tasks", err)
	}
	return tasks, nil
}

// Insert writes the batch in one transaction. All rows get the transaction's now().
func (s *PostgresStore) Insert(ctx context.Context, rows []task.Draft) error {
	if len(rows) == 0 {
		return nil
	}
	drafts, err := prepareDrafts(rows)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return task.Transport("begin insert", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, d := range drafts {
		batch.Queue(`INSERT INTO `+Table+` (id, title, priority, category) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), d.Title, string(d.Priority), d.Category)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return task.Transport("insert task", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return task.Transport("commit insert", err)
	}
	return nil
}

// SetCompletion updates is_completed for one row.
func (s *PostgresStore) SetCompletion(ctx context.Context, id string, completed bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE `+Table+` SET is_completed = $1 WHERE id::text = $2`, completed, id)
	if err != nil {
		return task.Transport("set completion", err)
	}
	if tag.RowsAffected() == 0 {
		return task.Transport("set completion", fmt.Errorf("task %s: %w", id, task.ErrNotFound))
	}
	return nil
}

// Delete removes one row. A missing id is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM `+Table+` WHERE id::text = $1`, id); err != nil {
		return task.Transport("delete task", err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
