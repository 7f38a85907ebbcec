// Package store persists task rows in a relational backend.
//
// Two backends share the same todos layout: SQLite for local use and tests,
// and Postgres for a hosted database. Every failure is returned as a
// *task.TransportError so callers can tell store trouble from bad input.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// Table is the name of the task table on every backend.
const Table = "todos"

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is the task store gateway.
type Store interface {
	// List returns all rows, newest first.
	List(ctx context.Context) ([]task.Task, error)
	// Insert adds the batch in one transaction. An empty batch is a no-op.
	Insert(ctx context.Context, rows []task.Draft) error
	// SetCompletion sets is_completed for id. An unknown id wraps task.ErrNotFound.
	SetCompletion(ctx context.Context, id string, completed bool) error
	// Delete removes id. Deleting an absent id succeeds.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Migrator is implemented by backends that can create their own schema.
type Migrator interface {
	EnsureSchema(ctx context.Context) error
}

// Config selects and locates a backend.
type Config struct {
	Driver      string
	Path        string // sqlite file, or ":memory:"
	DSN         string // postgres connection string
	AutoMigrate bool
}

// Open connects to the configured backend. SQLite always ensures its schema;
// Postgres does so only when AutoMigrate is set.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		return NewSQLiteStore(ctx, cfg.Path)
	case DriverPostgres:
		s, err := NewPostgresStore(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := s.EnsureSchema(ctx); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q (valid: %s, %s)", cfg.Driver, DriverSQLite, DriverPostgres)
	}
}

// prepareDrafts applies defaults and validates the whole batch before any write.
func prepareDrafts(rows []task.Draft) ([]task.Draft, error) {
	out := make([]task.Draft, 0, len(rows))
	for i, d := range rows {
		d = d.WithDefaults()
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}
