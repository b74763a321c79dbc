// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps the list of conversion runs completed by this
// process. It is backed by an in-memory SQLite database, so the list is gone
// when the process exits.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-converter/pkg/types"
)

// Entry is one completed run.
type Entry struct {
	RunID       string               `json:"run_id" yaml:"run_id"`
	Mode        types.Mode           `json:"mode" yaml:"mode"`
	FileName    string               `json:"file_name" yaml:"file_name"`
	SizeBytes   int64                `json:"size_bytes" yaml:"size_bytes"`
	Result      types.ResultMetadata `json:"result" yaml:"result"`
	CompletedAt time.Time            `json:"completed_at" yaml:"completed_at"`
}

// Journal records completed runs.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates an empty journal. Every journal gets its own database, even
// within one process.
func Open() (*Journal, error) {
	dsn := fmt.Sprintf("file:journal-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	// The database lives as long as a connection to it is open.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	j := &Journal{db: db, now: time.Now}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database; the recorded runs are discarded.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	_, err := j.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		mode TEXT NOT NULL,
		file_name TEXT,
		size_bytes INTEGER,
		result TEXT NOT NULL,
		completed_at TEXT NOT NULL
	)`)
	return err
}

// Record stores e. A zero CompletedAt is set to the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CompletedAt.IsZero() {
		e.CompletedAt = j.now()
	}
	result, err := yaml.Marshal(e.Result)
	if err != nil {
		return fmt.Errorf("encoding result of run %s: %w", e.RunID, err)
	}

	_, err = j.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, mode, file_name, size_bytes, result, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, string(e.Mode), e.FileName, e.SizeBytes, string(result),
		e.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", e.RunID, err)
	}
	return nil
}

// RecordRun records the snapshot of a converted session.
func (j *Journal) RecordRun(ctx context.Context, snap types.Snapshot) error {
	if snap.Status != types.StatusConverted || snap.Result == nil {
		return fmt.Errorf("run %s is %s, not converted", snap.RunID, snap.Status)
	}
	e := Entry{
		RunID:  snap.RunID,
		Mode:   snap.Mode,
		Result: *snap.Result,
	}
	if snap.File != nil {
		e.FileName = snap.File.Name
		e.SizeBytes = snap.File.Size
	}
	return j.Record(ctx, e)
}

// List returns every recorded run, newest first.
func (j *Journal) List(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, mode, file_name, size_bytes, result, completed_at
		 FROM runs ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			mode        string
			fileName    sql.NullString
			size        sql.NullInt64
			result      string
			completedAt string
		)
		if err := rows.Scan(&e.RunID, &mode, &fileName, &size, &result, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		e.Mode = types.Mode(mode)
		e.FileName = fileName.String
		e.SizeBytes = size.Int64
		if err := yaml.Unmarshal([]byte(result), &e.Result); err != nil {
			return nil, fmt.Errorf("decoding result of run %s: %w", e.RunID, err)
		}
		if e.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
			return nil, fmt.Errorf("parsing completion time of run %s: %w", e.RunID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
