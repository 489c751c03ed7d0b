package store

import (
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/roach88/brilir/internal/ir"
	"github.com/roach88/brilir/internal/testutil"
)

// createTestStore opens a fresh store in a temp dir with sequential run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.WithIDGenerator(testutil.NewSequenceIDGenerator("run"))
}

// testProgram is a one-function resolved program: main prints 1.
func testProgram() *ir.Program {
	return &ir.Program{Functions: []ir.Function{{
		Name: "main",
		Instrs: []ir.Code{
			ir.Constant{Dest: "v", Type: ir.Int{}, Value: ir.IntLit(1)},
			ir.Effect{Op: ir.Print, Args: []string{"v"}},
		},
	}}}
}

func testSuccessRun(t *testing.T, sourceHash, features string) Run {
	t.Helper()
	run, err := SuccessRun(sourceHash, features, testProgram())
	if err != nil {
		t.Fatalf("SuccessRun() failed: %v", err)
	}
	return run
}

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue any
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

func contains(slice []string, item string) bool {
	return slices.Contains(slice, item)
}
