package store

import (
	"context"
	"fmt"

	"github.com/roach88/brilir/internal/ir"
)

// RecordRun appends a run and returns it with ID and Seq filled in.
// An empty ID is drawn from the store's IDGenerator; empty versions default to
// the running tool's.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: recording the same ID twice
// returns the originally stored run.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	if run.ToolVersion == "" {
		run.ToolVersion = ir.ToolVersion
	}
	if run.IRVersion == "" {
		run.IRVersion = ir.IRVersion
	}
	if err := run.validate(); err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, source_hash, features, status, error_code, error_text, program_hash, output, tool_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.SourceHash,
		run.Features,
		string(run.Status),
		run.ErrorCode,
		run.ErrorText,
		run.ProgramHash,
		run.Output,
		run.ToolVersion,
		run.IRVersion,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Run{}, fmt.Errorf("record run: rows affected: %w", err)
	}
	if affected == 0 {
		existing, err := s.ReadRun(ctx, run.ID)
		if err != nil {
			return Run{}, fmt.Errorf("record run: read existing: %w", err)
		}
		return existing, nil
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("record run: last insert id: %w", err)
	}
	run.Seq = seq
	return run, nil
}
