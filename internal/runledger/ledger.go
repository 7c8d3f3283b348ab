package runledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status classifies the outcome of one (observation, filter) pair.
type Status string

const (
	// StatusProcessed means the pair was fit (or skipped per record) and
	// the corrected stack was written.
	StatusProcessed Status = "processed"
	// StatusSkippedNoTemplate means the scattered-light template was
	// missing and the pair was passed over.
	StatusSkippedNoTemplate Status = "skipped_no_template"
	// StatusNoImages means the observation folder had no sky images.
	StatusNoImages Status = "no_images"
	// StatusFailed means processing aborted partway through the pair.
	StatusFailed Status = "failed"
)

// Entry is one recorded outcome.
type Entry struct {
	ID          int64
	RunID       string
	Observation string
	Filter      string
	Status      Status
	Snapshots   int
	Detail      string
	CreatedAt   time.Time
}

// Ledger manages the run history backed by SQLite.
type Ledger struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS run_entries (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT    NOT NULL,
    observation TEXT    NOT NULL,
    filter      TEXT    NOT NULL DEFAULT '',
    status      TEXT    NOT NULL,
    snapshots   INTEGER NOT NULL DEFAULT 0,
    detail      TEXT    NOT NULL DEFAULT '',
    created_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_entries_run ON run_entries(run_id);
`

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}

	return &Ledger{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record appends one outcome.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO run_entries (run_id, observation, filter, status, snapshots, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Observation, e.Filter, string(e.Status), e.Snapshots, e.Detail,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. A limit of 0 returns
// everything.
func (l *Ledger) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, observation, filter, status, snapshots, detail, created_at
              FROM run_entries ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, createdAt string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Observation, &e.Filter, &status, &e.Snapshots, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Status = Status(status)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return entries, nil
}
