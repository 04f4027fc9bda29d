package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

// PostgresAdapter implements the same two-key contract on a single kv table.
// It exists for deployments that already run Postgres and do not want a
// Redis instance; the at-rest value layout is identical.
type PostgresAdapter struct {
	db *sql.DB
}

// NewPostgresAdapter wraps an already-open database handle.
func NewPostgresAdapter(db *sql.DB) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

// OpenPostgres connects, pings, and ensures the kv table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresAdapter, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS kv_store (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure kv_store: %w", err)
	}

	return &PostgresAdapter{db: db}, nil
}

func (a *PostgresAdapter) set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO kv_store (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`
	_, err := a.db.ExecContext(ctx, q, key, value)
	return err
}

func (a *PostgresAdapter) get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_store WHERE key = $1;`
	var value string
	err := a.db.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (a *PostgresAdapter) SaveProjects(ctx context.Context, projects []domain.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	if err := a.set(ctx, projectsKey, string(data)); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}

func (a *PostgresAdapter) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	data, ok, err := a.get(ctx, projectsKey)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if !ok {
		return []domain.Project{}, nil
	}

	var projects []domain.Project
	if err := json.Unmarshal([]byte(data), &projects); err != nil {
		return nil, fmt.Errorf("unmarshal projects: %w", err)
	}
	return projects, nil
}

func (a *PostgresAdapter) SaveCurrentProject(ctx context.Context, projectID string) error {
	if err := a.set(ctx, currentProjectKey, projectID); err != nil {
		return fmt.Errorf("save current project: %w", err)
	}
	return nil
}

func (a *PostgresAdapter) ClearCurrentProject(ctx context.Context) error {
	const q = `DELETE FROM kv_store WHERE key = $1;`
	if _, err := a.db.ExecContext(ctx, q, currentProjectKey); err != nil {
		return fmt.Errorf("clear current project: %w", err)
	}
	return nil
}

func (a *PostgresAdapter) LoadCurrentProjectID(ctx context.Context) (string, bool, error) {
	id, ok, err := a.get(ctx, currentProjectKey)
	if err != nil {
		return "", false, fmt.Errorf("load current project: %w", err)
	}
	return id, ok, nil
}

func (a *PostgresAdapter) Close() error {
	return a.db.Close()
}
