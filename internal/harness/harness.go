package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/convert"
	"github.com/roach88/brilir/internal/ir"
)

// Harness runs scenarios.
type Harness struct {
	logger  *slog.Logger
	workers int
}

// New creates a harness. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger, workers: 4}
}

// Run executes a scenario with a discarding logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(context.Background(), scenario)
}

// Run converts the scenario's program and checks the outcome against its
// expectations. The returned error covers problems running the scenario
// (unreadable or malformed input); expectation mismatches are reported in
// the Result.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	data, err := os.ReadFile(scenario.Program)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	prog, err := ast.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode program %s: %w", scenario.Program, err)
	}

	features, err := scenario.FeatureSet()
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}

	conv := convert.New(features)
	h.logger.Debug("running scenario",
		"name", scenario.Name,
		"program", scenario.Program,
		"features", features.String())

	resolved, convErr := conv.Program(*prog)

	parallel, parErr := conv.ProgramConcurrent(ctx, *prog, h.workers)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	result := NewResult()
	if err := record(result, resolved, convErr); err != nil {
		return nil, err
	}

	checkConcurrent(result, resolved, convErr, parallel, parErr)
	checkExpect(result, scenario.Expect)

	h.logger.Debug("scenario finished",
		"name", scenario.Name,
		"pass", result.Pass,
		"converted", result.Converted())

	return result, nil
}

// record fills the outcome fields of result.
func record(result *Result, resolved *ir.Program, convErr error) error {
	if convErr != nil {
		reason, ok := convert.Reason(convErr)
		if !ok {
			return fmt.Errorf("unexpected conversion error: %w", convErr)
		}
		result.ErrorCode = reason.Kind.Code()
		result.ErrorKind = reason.Kind.String()
		result.ErrorText = convErr.Error()
		return nil
	}

	canonical, err := ir.CanonicalProgram(resolved)
	if err != nil {
		return fmt.Errorf("canonicalize resolved program: %w", err)
	}
	fingerprint, err := ir.Fingerprint(resolved)
	if err != nil {
		return err
	}
	result.Output = canonical
	result.Fingerprint = fingerprint
	return nil
}

// checkConcurrent requires the concurrent conversion to agree with the sequential one.
func checkConcurrent(result *Result, resolved *ir.Program, convErr error, parallel *ir.Program, parErr error) {
	switch {
	case convErr == nil && parErr == nil:
		fp, err := ir.Fingerprint(parallel)
		if err != nil || fp != result.Fingerprint {
			result.AddError("concurrent conversion produced a different program")
		}
	case convErr != nil && parErr != nil:
		if convErr.Error() != parErr.Error() {
			result.AddError(fmt.Sprintf("concurrent conversion reported %q, sequential reported %q", parErr, convErr))
		}
	default:
		result.AddError(fmt.Sprintf("concurrent conversion diverged: sequential error %v, concurrent error %v", convErr, parErr))
	}
}

func checkExpect(result *Result, expect Expect) {
	if expect.OK {
		if !result.Converted() {
			result.AddError(fmt.Sprintf("expected success, got %s: %s", result.ErrorCode, result.ErrorText))
		}
		return
	}

	want := expect.Error
	if want == nil {
		return
	}
	if result.Converted() {
		result.AddError(fmt.Sprintf("expected %s, conversion succeeded", want.Kind))
		return
	}
	if result.ErrorKind != want.Kind {
		result.AddError(fmt.Sprintf("expected %s, got %s: %s", want.Kind, result.ErrorKind, result.ErrorText))
		return
	}
	if want.Message != "" && result.ErrorText != want.Message {
		result.AddError(fmt.Sprintf("expected message %q, got %q", want.Message, result.ErrorText))
	}
}

// IsDecodeError reports whether err came from malformed bril JSON.
func IsDecodeError(err error) bool {
	var de *ast.DecodeError
	return errors.As(err, &de)
}
