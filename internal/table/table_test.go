package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestSetGrowsRowsAndColumns verifies cells can be written past the current shape.
func TestSetGrowsRowsAndColumns(t *testing.T) {
	tbl := New("question_id", "question")
	if err := tbl.Set(2, "model-a", "answer"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.Len())
	}
	if diff := cmp.Diff([]string{"question_id", "question", "model-a"}, tbl.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Get(2, "model-a"); got != "answer" {
		t.Fatalf("unexpected cell %q", got)
	}
	if tbl.Get(0, "model-a") != "" || tbl.Get(9, "model-a") != "" || tbl.Get(0, "nope") != "" {
		t.Fatalf("expected blank for absent cells")
	}
	if err := tbl.Set(-1, "model-a", "x"); err == nil {
		t.Fatalf("expected negative row error")
	}
}

// TestSaveLoadRoundTrip verifies positional rows survive a flush and reload.
func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := New("question_id", "question", "task")
	rows := [][]string{
		{"q1", "Say \"hi\", twice", "writing"},
		{"q2", "multi\nline", "math"},
	}
	for r, row := range rows {
		for c, column := range tbl.Columns() {
			if err := tbl.Set(r, column, row[c]); err != nil {
				t.Fatalf("set: %v", err)
			}
		}
	}
	_ = tbl.Set(1, "model-a", "42")

	path := filepath.Join(t.TempDir(), "out", "responses.csv")
	if err := tbl.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, got %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(tbl.Columns(), loaded.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	for r := 0; r < tbl.Len(); r++ {
		if diff := cmp.Diff(tbl.Row(r, tbl.Columns()), loaded.Row(r, loaded.Columns())); diff != "" {
			t.Fatalf("row %d mismatch (-want +got):\n%s", r, diff)
		}
	}
}

// TestLoadOrNewMissingFile verifies a missing file yields an empty table.
func TestLoadOrNewMissingFile(t *testing.T) {
	tbl, existed, err := LoadOrNew(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil {
		t.Fatalf("load or new: %v", err)
	}
	if existed || tbl.Len() != 0 || len(tbl.Columns()) != 0 {
		t.Fatalf("expected empty new table")
	}
}

// TestReadRejectsRaggedRows verifies a row with the wrong field count is an error.
func TestReadRejectsRaggedRows(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n1,2\n3\n"))
	if err == nil || !strings.Contains(err.Error(), "read row 1") {
		t.Fatalf("expected ragged row error, got %v", err)
	}
}

// TestReadRejectsDuplicateColumns verifies header names are unique.
func TestReadRejectsDuplicateColumns(t *testing.T) {
	if _, err := Read(strings.NewReader("a,a\n1,2\n")); err == nil {
		t.Fatalf("expected duplicate column error")
	}
}

// TestMissing verifies blank and whitespace cells are reported with positions.
func TestMissing(t *testing.T) {
	tbl, err := Read(strings.NewReader("question_id,model-a,model-b\nq1,yes,\nq2, ,no\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []Cell{
		{Row: 0, Column: 2, Name: "model-b"},
		{Row: 1, Column: 1, Name: "model-a"},
	}
	if diff := cmp.Diff(want, tbl.Missing()); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

// TestMissingInRestrictsScope verifies column and range filters, including absent columns.
func TestMissingInRestrictsScope(t *testing.T) {
	tbl, err := Read(strings.NewReader("question_id,model-a\nq1,\nq2,\nq3,ok\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := tbl.MissingIn([]string{"model-a", "model-b"}, 1, 10)
	want := []Cell{
		{Row: 1, Column: 1, Name: "model-a"},
		{Row: 1, Column: -1, Name: "model-b"},
		{Row: 2, Column: -1, Name: "model-b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

// TestCloneIsDeep verifies edits to a clone leave the source intact.
func TestCloneIsDeep(t *testing.T) {
	tbl := New("a")
	_ = tbl.Set(0, "a", "1")
	clone := tbl.Clone()
	_ = clone.Set(0, "a", "2")
	_ = clone.Set(0, "b", "3")
	if tbl.Get(0, "a") != "1" || tbl.HasColumn("b") {
		t.Fatalf("expected source table to be unchanged")
	}
}
