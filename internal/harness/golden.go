package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/brilir/internal/ir"
)

// Snapshot is the golden form of a result: the canonical resolved program on
// success, otherwise canonical JSON of the error code, kind and message.
func Snapshot(result *Result) ([]byte, error) {
	if result.Converted() {
		if result.Output == nil {
			return nil, fmt.Errorf("result has neither output nor error")
		}
		return result.Output, nil
	}
	return ir.MarshalCanonical(map[string]any{
		"error": map[string]any{
			"code":    result.ErrorCode,
			"kind":    result.ErrorKind,
			"message": result.ErrorText,
		},
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}

// GoldenPath returns the golden file for a scenario file outside of go test:
// golden/<file name>.golden next to the scenario.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// UpdateGolden writes the result's snapshot as the scenario's golden file.
func UpdateGolden(scenarioFile string, result *Result) error {
	snapshot, err := Snapshot(result)
	if err != nil {
		return err
	}

	goldenPath := GoldenPath(scenarioFile)
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, snapshot, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the result matches the scenario's golden file.
func CompareGolden(scenarioFile string, result *Result) (bool, error) {
	golden, err := os.ReadFile(GoldenPath(scenarioFile))
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}

	snapshot, err := Snapshot(result)
	if err != nil {
		return false, err
	}
	return bytes.Equal(golden, snapshot), nil
}
