// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps an append-only sqlite log of conversions so that
// repeated batch runs can be audited later.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fconvert/pkg/types"
)

// Journal manages the conversion journal database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path, creating the parent
// directory and the schema if needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			format TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT,
			started_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_output ON conversions(output)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one conversion to the journal.
func (j *Journal) Record(ctx context.Context, rec types.ConversionRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO conversions (input, output, format, outcome, detail, started_at, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Input, rec.Output, rec.Format, string(rec.Outcome.Kind), rec.Outcome.Detail,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.Input, err)
	}
	return nil
}

// list returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (j *Journal) list(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	q := `SELECT input, output, format, outcome, detail, started_at, elapsed_ms
		FROM conversions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var recs []types.ConversionRecord
	for rows.Next() {
		var (
			rec       types.ConversionRecord
			kind      string
			detail    sql.NullString
			startedAt string
			elapsedMS int64
		)
		if err := rows.Scan(&rec.Input, &rec.Output, &rec.Format, &kind, &detail, &startedAt, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		rec.Outcome = types.Outcome{Kind: types.OutcomeKind(kind), Detail: detail.String}
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rec.StartedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
