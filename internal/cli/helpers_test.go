package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/brilir/internal/testutil"
)

// printProgram has no positions: main prints the constant 1.
const printProgram = `{"functions":[{"name":"main","instrs":[{"op":"const","dest":"v","type":"int","value":1},{"op":"print","args":["v"]}]}]}`

// faddProgram uses the float extension at line 3, column 3.
const faddProgram = `{
  "functions": [
    {
      "name": "main",
      "instrs": [
        {"op": "const", "dest": "x", "type": "int", "value": 1, "pos": {"row": 2, "col": 3}},
        {"op": "fadd", "dest": "y", "type": "int", "args": ["x", "x"], "pos": {"row": 3, "col": 3}}
      ],
      "pos": {"row": 1, "col": 1}
    }
  ]
}`

// executeCommand runs the root command with args and returns stdout, stderr
// and the command error.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to name inside a fresh temp dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// useSequentialRunIDs makes recorded run IDs run-1, run-2, ... for one test.
func useSequentialRunIDs(t *testing.T) {
	t.Helper()
	runIDs = testutil.NewSequenceIDGenerator("run")
	t.Cleanup(func() { runIDs = nil })
}
