package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdata(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_AllTestdataScenariosPass(t *testing.T) {
	files, err := FindScenarios("testdata", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		s, err := LoadScenario(file)
		require.NoError(t, err, file)

		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_SuccessCarriesOutput(t *testing.T) {
	result, err := Run(loadTestdata(t, "float_enabled"))
	require.NoError(t, err)

	assert.True(t, result.Converted())
	assert.NotEmpty(t, result.Output)
	assert.Len(t, result.Fingerprint, 64)
	assert.Empty(t, result.ErrorKind)
}

func TestRun_FailureCarriesReason(t *testing.T) {
	result, err := Run(loadTestdata(t, "float_disabled"))
	require.NoError(t, err)

	assert.False(t, result.Converted())
	assert.Nil(t, result.Output)
	assert.Equal(t, "E203", result.ErrorCode)
	assert.Equal(t, "InvalidValueOps", result.ErrorKind)
	assert.Equal(t, "Line 3, Column 3: Expected a value operation, found fadd", result.ErrorText)
}

func TestRun_ReportsUnexpectedSuccess(t *testing.T) {
	s := loadTestdata(t, "float_enabled")
	s.Expect = Expect{Error: &ExpectError{Kind: "InvalidValueOps"}}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{"expected InvalidValueOps, conversion succeeded"}, result.Errors)
}

func TestRun_ReportsUnexpectedFailure(t *testing.T) {
	s := loadTestdata(t, "float_disabled")
	s.Expect = Expect{OK: true}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected success, got E203")
}

func TestRun_ReportsWrongKind(t *testing.T) {
	s := loadTestdata(t, "float_disabled")
	s.Expect.Error = &ExpectError{Kind: "InvalidEffectOps"}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected InvalidEffectOps, got InvalidValueOps")
}

func TestRun_ReportsWrongMessage(t *testing.T) {
	s := loadTestdata(t, "missing_type")
	s.Expect.Error.Message = "Missing type signature"

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{`expected message "Missing type signature", got "Line 7, Column 1: Missing type signature"`}, result.Errors)
}

func TestRun_MalformedProgram(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(prog, []byte(`{"functions":[{"name":"f","instrs":[{"dest":"x"}]}]}`), 0o644))

	_, err := Run(&Scenario{Name: "bad", Program: prog, Expect: Expect{OK: true}})
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Run(ctx, loadTestdata(t, "core_add"))
	assert.ErrorIs(t, err, context.Canceled)
}
