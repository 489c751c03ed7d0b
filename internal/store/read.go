package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `seq, id, source_hash, features, status, error_code, error_text, program_hash, output, tool_version, ir_version`

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)
	return scanRun(row)
}

// LookupCached returns the most recent successful run for the given source
// hash and feature string. The boolean is false when there is none.
func (s *Store) LookupCached(ctx context.Context, sourceHash, features string) (Run, bool, error) {
	runs, err := s.QueryRuns(ctx, RunQuery{
		Filter: And{Predicates: []Predicate{
			Equals{Field: "source_hash", Value: sourceHash},
			Equals{Field: "features", Value: features},
			Equals{Field: "status", Value: StatusOK},
		}},
		Limit: 1,
	})
	if err != nil {
		return Run{}, false, fmt.Errorf("lookup cached: %w", err)
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}

// Runs returns up to limit runs, newest first. A limit <= 0 returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	return s.QueryRuns(ctx, RunQuery{Limit: limit})
}

// QueryRuns returns the runs matching q, newest first.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) QueryRuns(ctx context.Context, q RunQuery) ([]Run, error) {
	query, params, err := compileQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one row. sql.ErrNoRows is returned unwrapped so callers can match it.
func scanRun(row scanner) (Run, error) {
	var run Run
	var status string
	err := row.Scan(
		&run.Seq,
		&run.ID,
		&run.SourceHash,
		&run.Features,
		&status,
		&run.ErrorCode,
		&run.ErrorText,
		&run.ProgramHash,
		&run.Output,
		&run.ToolVersion,
		&run.IRVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = Status(status)
	return run, nil
}
