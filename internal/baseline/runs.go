package baseline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/docrecon/internal/contrast"
)

// ErrRunNotFound is returned (wrapped with the run ID) by Run for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded contrast scan.
type Run struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Root      string    `json:"root"`
	StartedAt time.Time `json:"started_at"`
	Findings  int       `json:"findings"` // rows stored, after fingerprint dedup
}

// RecordRun stores run and its findings in one transaction and returns the
// run with ID (if it was empty), Seq and Findings filled in.
//
// Identical fingerprints within one run are stored once, and Findings
// counts the stored rows.
func (s *Store) RecordRun(ctx context.Context, run Run, findings []contrast.Finding) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	run.Findings = 0

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, started_at, finding_count)
		VALUES (?, ?, ?, ?)
	`,
		run.ID,
		run.Root,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Findings,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: insert run: %w", err)
	}
	if run.Seq, err = res.LastInsertId(); err != nil {
		return Run{}, fmt.Errorf("record run: seq: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (run_id, fingerprint, path, line, col, class_name, background, variant)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, fingerprint) DO NOTHING
	`)
	if err != nil {
		return Run{}, fmt.Errorf("record run: prepare: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		res, err := stmt.ExecContext(ctx,
			run.ID,
			f.Fingerprint(),
			f.Path,
			f.Line,
			f.Column,
			f.ClassName,
			f.Background,
			f.Variant,
		)
		if err != nil {
			return Run{}, fmt.Errorf("record run: insert finding %s:%d: %w", f.Path, f.Line, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Run{}, fmt.Errorf("record run: rows affected: %w", err)
		}
		run.Findings += int(n)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET finding_count = ? WHERE id = ?`,
		run.Findings, run.ID,
	); err != nil {
		return Run{}, fmt.Errorf("record run: update count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// Accepted returns the fingerprints recorded by the most recent run.
// Returns an empty (non-nil) map when no run has been recorded.
func (s *Store) Accepted(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.fingerprint
		FROM findings f
		WHERE f.run_id = (SELECT id FROM runs ORDER BY seq DESC LIMIT 1)
		ORDER BY f.fingerprint COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query baseline: %w", err)
	}
	defer rows.Close()

	accepted := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scan baseline: %w", err)
		}
		accepted[fp] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate baseline: %w", err)
	}
	return accepted, nil
}

// Runs returns up to limit runs, newest first. limit <= 0 means no limit.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, root, started_at, finding_count
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			run       Run
			startedAt string
		)
		if err := rows.Scan(&run.Seq, &run.ID, &run.Root, &startedAt, &run.Findings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("run %s: parse started_at: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Run returns the recorded run with the given ID.
// Returns an error wrapping ErrRunNotFound if no such run exists.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	var (
		run       Run
		startedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, id, root, started_at, finding_count
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.Seq, &run.ID, &run.Root, &startedAt, &run.Findings)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run %s: %w", id, err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return Run{}, fmt.Errorf("run %s: parse started_at: %w", run.ID, err)
	}
	return run, nil
}

// Findings returns the findings stored for a run, ordered by path, line and
// column.
func (s *Store) Findings(ctx context.Context, runID string) ([]contrast.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, line, col, class_name, background, variant
		FROM findings
		WHERE run_id = ?
		ORDER BY path COLLATE BINARY ASC, line ASC, col ASC, fingerprint COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	findings := []contrast.Finding{}
	for rows.Next() {
		var f contrast.Finding
		if err := rows.Scan(&f.Path, &f.Line, &f.Column, &f.ClassName, &f.Background, &f.Variant); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return findings, nil
}
