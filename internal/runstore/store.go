// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runstore archives completed pipeline runs in a SQLite database.
// Implements: prd005-archive (R1-R2);
//
//	docs/ARCHITECTURE § Run Archive.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-pipeline/pkg/types"
)

const dbFile = "runs.db"

// RunRecord is one archived pipeline run.
type RunRecord struct {
	ID          int64     `json:"id" yaml:"id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Mode        string    `json:"mode" yaml:"mode"`
	Topic       string    `json:"topic,omitempty" yaml:"topic,omitempty"`
	ItemA       string    `json:"item_a,omitempty" yaml:"item_a,omitempty"`
	ItemB       string    `json:"item_b,omitempty" yaml:"item_b,omitempty"`
	Depth       string    `json:"depth" yaml:"depth"`
	PlanSteps   []string  `json:"plan_steps" yaml:"plan_steps"`
	ReportPath  string    `json:"report_path" yaml:"report_path"`
	DataPath    string    `json:"data_path,omitempty" yaml:"data_path,omitempty"`
	SourceCount int       `json:"source_count" yaml:"source_count"`
}

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive database at dir/runs.db and
// bootstraps the schema (R1.1).
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			topic TEXT,
			item_a TEXT,
			item_b TEXT,
			depth TEXT,
			plan_steps TEXT,
			report_path TEXT,
			data_path TEXT,
			source_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record archives one successful pipeline result (R1.2).
func (s *Store) Record(ctx context.Context, result types.PipelineResult) (int64, error) {
	steps, err := json.Marshal(result.PlanSteps)
	if err != nil {
		return 0, fmt.Errorf("encoding plan steps: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, mode, topic, item_a, item_b, depth,
			plan_steps, report_path, data_path, source_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		string(result.Request.Mode),
		result.Request.Topic,
		result.Request.ItemA,
		result.Request.ItemB,
		string(result.Request.Depth),
		string(steps),
		result.Report.ReportPath,
		result.Report.DataPath,
		len(result.Analysis.Sources()),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// List returns archived runs, newest first, up to limit (R2.1). A
// non-positive limit returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, created_at, mode, topic, item_a, item_b, depth,
		plan_steps, report_path, data_path, source_count
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			createdAt string
			steps     string
		)
		if err := rows.Scan(&r.ID, &createdAt, &r.Mode, &r.Topic, &r.ItemA,
			&r.ItemB, &r.Depth, &steps, &r.ReportPath, &r.DataPath,
			&r.SourceCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}
		if steps != "" {
			if err := json.Unmarshal([]byte(steps), &r.PlanSteps); err != nil {
				return nil, fmt.Errorf("decoding plan steps for run %d: %w", r.ID, err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
