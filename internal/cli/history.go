package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/brilir/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Status   string // ok | error
	Features string // exact feature string, e.g. "float,position"
	Code     string // error code, e.g. E203
}

// HistoryEntry is one recorded run in JSON output.
type HistoryEntry struct {
	Seq         int64  `json:"seq"`
	ID          string `json:"id"`
	Status      string `json:"status"`
	Features    string `json:"features"`
	SourceHash  string `json:"source_hash"`
	ProgramHash string `json:"program_hash,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
	ErrorText   string `json:"error_text,omitempty"`
	ToolVersion string `json:"tool_version"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversion runs",
		Long: `List the runs recorded by "brilir convert --db", newest first.

Examples:
  brilir history --db runs.db
  brilir history --db runs.db --limit 5 --format json
  brilir history --db runs.db --status error --code E203`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite run log (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "only runs with this status (ok|error)")
	cmd.Flags().StringVar(&opts.Features, "features", "", "only runs with this feature string")
	cmd.Flags().StringVar(&opts.Code, "code", "", "only failures with this error code")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	// Opening would create an empty database; a missing file is a user error.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	db, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer db.Close()

	if opts.Status != "" && opts.Status != string(store.StatusOK) && opts.Status != string(store.StatusError) {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("invalid status %q: must be ok or error", opts.Status), nil)
	}

	runs, err := db.QueryRuns(ctx, store.RunQuery{
		Filter: store.Where(
			"status", opts.Status,
			"features", opts.Features,
			"error_code", opts.Code,
		),
		Limit: opts.Limit,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	if opts.Format == "json" {
		entries := make([]HistoryEntry, 0, len(runs))
		for _, run := range runs {
			entries = append(entries, historyEntry(run))
		}
		return formatter.Success(entries)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	fmt.Fprintln(formatter.Writer, historyTable(runs).Render())
	return nil
}

func historyEntry(run store.Run) HistoryEntry {
	return HistoryEntry{
		Seq:         run.Seq,
		ID:          run.ID,
		Status:      string(run.Status),
		Features:    run.Features,
		SourceHash:  run.SourceHash,
		ProgramHash: run.ProgramHash,
		ErrorCode:   run.ErrorCode,
		ErrorText:   run.ErrorText,
		ToolVersion: run.ToolVersion,
	}
}

func historyTable(runs []store.Run) table.Writer {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Conversion runs (%d)", len(runs)))
	t.AppendHeader(table.Row{"Seq", "Run", "Status", "Features", "Source", "Result"})
	for _, run := range runs {
		outcome := shortHash(run.ProgramHash)
		if run.Status == store.StatusError {
			outcome = fmt.Sprintf("%s %s", run.ErrorCode, run.ErrorText)
		}
		t.AppendRow(table.Row{run.Seq, run.ID, run.Status, run.Features, shortHash(run.SourceHash), outcome})
	}
	return t
}

// shortHash trims a hex digest for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
