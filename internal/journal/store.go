package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/open-unicorn/uws-sidebar/internal/db"
	"github.com/open-unicorn/uws-sidebar/internal/patcher"
)

// Store persists runs to the journal database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a run and its page outcomes in one transaction. If run.ID
// is empty a UUID is generated; the stored ID is returned.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, static_dir, dry_run)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.DateTime),
		run.FinishedAt.UTC().Format(time.DateTime),
		run.StaticDir,
		boolToInt(run.DryRun),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for i, p := range run.Pages {
		applied, err := json.Marshal(editsOrEmpty(p.Applied))
		if err != nil {
			return "", fmt.Errorf("marshalling applied edits: %w", err)
		}
		missing, err := json.Marshal(editsOrEmpty(p.MissingAnchors))
		if err != nil {
			return "", fmt.Errorf("marshalling missing anchors: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO page_outcomes (
				run_id, position, filename, outcome,
				applied, missing_anchors, hash_before, hash_after
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, p.Filename, string(p.Outcome),
			string(applied), string(missing), p.HashBefore, p.HashAfter,
		)
		if err != nil {
			return "", fmt.Errorf("inserting outcome for %s: %w", p.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing journal: %w", err)
	}
	return run.ID, nil
}

// Get loads a run with its pages.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, static_dir, dry_run
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadPages(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// Recent returns up to limit runs, newest first, with their pages.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT id, started_at, finished_at, static_dir, dry_run FROM runs ORDER BY started_at DESC, rowid DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		if err := s.loadPages(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// PageHistory returns the outcomes recorded for one page, newest first.
func (s *Store) PageHistory(ctx context.Context, filename string, limit int) ([]PageRecord, error) {
	query := `
		SELECT o.filename, o.outcome, o.applied, o.missing_anchors, o.hash_before, o.hash_after
		FROM page_outcomes o JOIN runs r ON r.id = o.run_id
		WHERE o.filename = ?
		ORDER BY r.started_at DESC, o.id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, filename)
	if err != nil {
		return nil, fmt.Errorf("querying page history: %w", err)
	}
	defer rows.Close()

	var records []PageRecord
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

func (s *Store) loadPages(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT filename, outcome, applied, missing_anchors, hash_before, hash_after
		FROM page_outcomes WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("querying outcomes for run %s: %w", run.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return err
		}
		run.Pages = append(run.Pages, *p)
	}
	return rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run      Run
		started  string
		finished sql.NullString
		dryRun   int
	)
	if err := sc.Scan(&run.ID, &started, &finished, &run.StaticDir, &dryRun); err != nil {
		return nil, err
	}
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.FinishedAt = parseTime(finished.String)
	}
	run.DryRun = dryRun != 0
	return &run, nil
}

func scanPage(sc scanner) (*PageRecord, error) {
	var (
		p                     PageRecord
		outcome               string
		appliedJSON, missJSON string
	)
	if err := sc.Scan(&p.Filename, &outcome, &appliedJSON, &missJSON, &p.HashBefore, &p.HashAfter); err != nil {
		return nil, err
	}
	p.Outcome = patcher.Outcome(outcome)
	if err := json.Unmarshal([]byte(appliedJSON), &p.Applied); err != nil {
		p.Applied = nil
	}
	if err := json.Unmarshal([]byte(missJSON), &p.MissingAnchors); err != nil {
		p.MissingAnchors = nil
	}
	return &p, nil
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func editsOrEmpty(edits []patcher.Edit) []patcher.Edit {
	if edits == nil {
		return []patcher.Edit{}
	}
	return edits
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
