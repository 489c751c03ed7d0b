package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/brilir/internal/convert"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	FeatureOptions
	Workers int
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path    string `json:"path"`
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Features string       `json:"features"`
	Files    []FileResult `json:"files"`
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Total    int          `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file.json>...",
		Short: "Validate bril programs without writing output",
		Long: `Convert each program and report whether it is valid under the
enabled features. Only the first error of each file is reported.

Exit codes:
  0 - All programs converted
  1 - One or more programs failed
  2 - Command error (invalid flags, unreadable config)

Examples:
  brilir check a.json b.json
  brilir check *.json --features all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts, args, cmd)
		},
	}

	opts.FeatureOptions.addFlags(cmd)
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "functions converted in parallel per program (0 = GOMAXPROCS)")

	return cmd
}

func runCheck(ctx context.Context, opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	features, err := opts.FeatureOptions.resolve(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfigFailed, err.Error(), nil)
	}

	conv := convert.New(features)
	result := CheckResult{
		Features: features.String(),
		Files:    make([]FileResult, 0, len(paths)),
		Total:    len(paths),
	}

	for _, path := range paths {
		file := checkFile(ctx, conv, path, opts.Workers, cmd)
		if err := ctx.Err(); err != nil {
			return WrapExitError(ExitCommandError, "check interrupted", err)
		}
		logger.Debug("checked", "path", path, "ok", file.OK, "code", file.Code)

		if file.OK {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Files = append(result.Files, file)
	}

	if opts.Format == "json" {
		status := "ok"
		if result.Failed > 0 {
			status = "error"
		}
		if err := formatter.Encode(CLIResponse{Status: status, Data: result}); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, file := range result.Files {
			if file.OK {
				fmt.Fprintf(w, "✓ %s\n", file.Path)
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", file.Path)
			fmt.Fprintf(w, "  [%s] %s\n", file.Code, file.Message)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d/%d programs valid (features: %s)\n", result.Passed, result.Total, result.Features)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d programs failed", result.Failed, result.Total))
	}
	return nil
}

func checkFile(ctx context.Context, conv *convert.Converter, path string, workers int, cmd *cobra.Command) FileResult {
	_, prog, loadErr := loadProgram(cmd, path)
	if loadErr != nil {
		return FileResult{Path: path, Code: loadErr.Code, Message: loadErr.Message}
	}

	if _, err := conv.ProgramConcurrent(ctx, *prog, workers); err != nil {
		cliErr := conversionError(err)
		return FileResult{Path: path, Code: cliErr.Code, Message: cliErr.Message}
	}
	return FileResult{Path: path, OK: true}
}
