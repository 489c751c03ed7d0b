package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/brilir/internal/config"
	"github.com/roach88/brilir/internal/convert"
	"github.com/roach88/brilir/internal/ir"
	"github.com/roach88/brilir/internal/store"
)

// runIDs overrides the store's run ID generator. Nil uses UUIDv7.
var runIDs store.IDGenerator

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	FeatureOptions
	Output   string // write resolved JSON here instead of stdout
	Database string // record runs and serve cached results
}

// ConvertResult is the JSON payload of a successful conversion.
type ConvertResult struct {
	Program     json.RawMessage `json:"program"`
	Fingerprint string          `json:"fingerprint"`
	Features    string          `json:"features"`
	Cached      bool            `json:"cached"`
	RunID       string          `json:"run_id,omitempty"`
	Output      string          `json:"output,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file.json|->",
		Short: "Convert a bril program to the resolved IR",
		Long: `Convert a bril JSON program and print the resolved program.

Every type and opcode is validated against the enabled features. The
first failure is reported with its error code and, when position
tracking is on, the line and column of its instruction or function.

With --db, runs are recorded in a SQLite log and a previous successful
conversion of the same source under the same features is reused.

Examples:
  brilir convert prog.json
  brilir convert prog.json --features float,memory,position
  brilir convert - --config features.cue < prog.json
  brilir convert prog.json --db runs.db -o resolved.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), opts, args[0], cmd)
		},
	}

	opts.FeatureOptions.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the resolved program to a file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite run log and cache")

	return cmd
}

func runConvert(ctx context.Context, opts *ConvertOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	features, err := opts.FeatureOptions.resolve(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfigFailed, err.Error(), nil)
	}

	data, prog, loadErr := loadProgram(cmd, path)
	if loadErr != nil {
		return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
	}

	sourceHash := ir.SourceHash(data)
	logger.Debug("program loaded",
		"path", path,
		"functions", len(prog.Functions),
		"features", features.String(),
		"source_hash", sourceHash)

	var db *store.Store
	if opts.Database != "" {
		db, err = openStore(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	result := ConvertResult{Features: features.String()}

	var compact []byte
	cached, hit, err := lookupCached(ctx, db, sourceHash, features)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	if hit {
		logger.Info("cache hit", "run_id", cached.ID, "fingerprint", cached.ProgramHash)
		compact = []byte(cached.Output)
		result.Fingerprint = cached.ProgramHash
		result.Cached = true
		result.RunID = cached.ID
	} else {
		resolved, convErr := convert.Convert(*prog, features)
		if convErr != nil {
			cliErr := conversionError(convErr)
			if db != nil {
				run, err := db.RecordRun(ctx, store.FailureRun(sourceHash, features.String(), cliErr.Code, cliErr.Message))
				if err != nil {
					return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
				}
				logger.Debug("run recorded", "run_id", run.ID, "status", run.Status)
			}
			return formatter.Fail(ExitCommandError, cliErr.Code, cliErr.Message, cliErr.Details)
		}

		run, err := store.SuccessRun(sourceHash, features.String(), resolved)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		if db != nil {
			run, err = db.RecordRun(ctx, run)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
			}
			logger.Debug("run recorded", "run_id", run.ID, "status", run.Status)
			result.RunID = run.ID
		}
		compact = []byte(run.Output)
		result.Fingerprint = run.ProgramHash
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, compact, "", "  "); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("invalid program JSON: %v", err), nil)
	}
	result.Program = json.RawMessage(indented.Bytes())

	if opts.Output != "" {
		indented.WriteByte('\n')
		if err := os.WriteFile(opts.Output, indented.Bytes(), 0o644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s: %v", opts.Output, err), nil)
		}
		logger.Info("resolved program written", "path", opts.Output)
		result.Output = opts.Output
	}

	if opts.Format == "json" {
		return formatter.Encode(CLIResponse{Status: "ok", Data: result, RunID: result.RunID})
	}

	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "✓ %s -> %s (%s)\n", path, opts.Output, result.Fingerprint)
		return nil
	}
	fmt.Fprintln(formatter.Writer, string(result.Program))
	return nil
}

// openStore opens the run log, applying the test ID generator override.
func openStore(path string) (*store.Store, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if runIDs != nil {
		db.WithIDGenerator(runIDs)
	}
	return db, nil
}

func lookupCached(ctx context.Context, db *store.Store, sourceHash string, features config.Features) (store.Run, bool, error) {
	if db == nil {
		return store.Run{}, false, nil
	}
	return db.LookupCached(ctx, sourceHash, features.String())
}
