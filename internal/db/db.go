package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultPath is the default database location
const DefaultPath = "/var/lib/partplan/plans.db"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// New opens or creates the SQLite database at the given path
func New(path string) (*DB, error) {
	if path == "" {
		path = DefaultPath
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas are per connection; keep a single one so they always apply
	conn.SetMaxOpenConns(1)

	// Enable foreign keys and WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	db := &DB{conn: conn, path: path}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file path
func (d *DB) Path() string {
	return d.path
}

// migrate runs the database schema migrations
func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var version int
	err = d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return err
	}

	migrations := []string{
		migrationV1,
	}

	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}

		tx, err := d.conn.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// migrationV1 creates the plan journal
const migrationV1 = `
-- One row per applied layout
CREATE TABLE IF NOT EXISTS plan_runs (
    id TEXT PRIMARY KEY,
    layout_path TEXT,
    accepted INTEGER DEFAULT 0,
    rejected INTEGER DEFAULT 0,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_time ON plan_runs(started_at);

-- Outcome of every request in a run, in request order
CREATE TABLE IF NOT EXISTS placements (
    id INTEGER PRIMARY KEY,
    run_id TEXT NOT NULL REFERENCES plan_runs(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    device_path TEXT NOT NULL,
    action TEXT NOT NULL,
    partition_number INTEGER,
    start_sector INTEGER,
    end_sector INTEGER,
    filesystem TEXT,
    target TEXT,
    outcome TEXT NOT NULL,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_placements_run ON placements(run_id, seq);
CREATE INDEX IF NOT EXISTS idx_placements_device ON placements(device_path);
`

// PlanRun represents an applied layout
type PlanRun struct {
	ID         string
	LayoutPath string
	Accepted   int
	Rejected   int
	StartedAt  time.Time
}

// Placement represents the outcome of one request
type Placement struct {
	ID              int64
	RunID           string
	Seq             int
	DevicePath      string
	Action          string
	PartitionNumber *int
	StartSector     uint64
	EndSector       uint64
	FileSystem      string
	Target          string
	Outcome         string
	Error           string
}

// Placement actions
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// Placement outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)
