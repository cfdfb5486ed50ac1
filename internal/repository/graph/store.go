// Package graph persists component-graph snapshots keyed by project and
// pipeline stage (raw, rulebased, final), so earlier passes stay available
// for comparison after consolidation replaces the graph wholesale.
package graph

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"codeatlas/internal/types"
)

// Store defines operations for persisting graph snapshots.
type Store interface {
	Put(ctx context.Context, projectID, stage string, g types.ComponentGraph) error
	Get(ctx context.Context, projectID, stage string) (types.ComponentGraph, error)
	List(ctx context.Context, projectID string) ([]string, error)
}

var ErrNotFound = errors.New("graph snapshot not found")

type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS graph_snapshots (
    id SERIAL PRIMARY KEY,
    project_id TEXT NOT NULL,
    stage TEXT NOT NULL,
    content BYTEA NOT NULL DEFAULT ''::bytea,
    size BIGINT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    UNIQUE(project_id, stage)
);
CREATE INDEX IF NOT EXISTS idx_graph_snapshots_project ON graph_snapshots(project_id);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Put(ctx context.Context, projectID, stage string, g types.ComponentGraph) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	projectID, stage, err := snapshotKey(projectID, stage)
	if err != nil {
		return err
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	content, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO graph_snapshots (project_id, stage, content, size, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (project_id, stage)
DO UPDATE SET content=EXCLUDED.content, size=EXCLUDED.size, updated_at=EXCLUDED.updated_at
`, projectID, stage, content, int64(len(content)), time.Now())
	return err
}

func (s *PostgresStore) Get(ctx context.Context, projectID, stage string) (types.ComponentGraph, error) {
	if s == nil {
		return types.ComponentGraph{}, fmt.Errorf("store is nil")
	}
	projectID, stage, err := snapshotKey(projectID, stage)
	if err != nil {
		return types.ComponentGraph{}, err
	}
	if err := s.ensureSchema(); err != nil {
		return types.ComponentGraph{}, err
	}
	var content []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT content FROM graph_snapshots WHERE project_id=$1 AND stage=$2`,
		projectID, stage).Scan(&content)
	if err == sql.ErrNoRows {
		return types.ComponentGraph{}, ErrNotFound
	}
	if err != nil {
		return types.ComponentGraph{}, err
	}
	var g types.ComponentGraph
	if err := json.Unmarshal(content, &g); err != nil {
		return types.ComponentGraph{}, err
	}
	return g, nil
}

func (s *PostgresStore) List(ctx context.Context, projectID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project_id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage FROM graph_snapshots WHERE project_id=$1 ORDER BY stage`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []string
	for rows.Next() {
		var st string
		if err := rows.Scan(&st); err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stages, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func snapshotKey(projectID, stage string) (string, string, error) {
	projectID = strings.TrimSpace(projectID)
	stage = strings.TrimSpace(stage)
	if projectID == "" {
		return "", "", fmt.Errorf("project_id is required")
	}
	if stage == "" {
		return "", "", fmt.Errorf("stage is required")
	}
	return projectID, stage, nil
}
