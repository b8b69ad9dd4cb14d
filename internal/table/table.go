// Package table is a positional string table persisted as CSV. Rows are
// addressed by index and columns by name; blank cells mean "missing".
package table

import (
	"fmt"
	"strings"
)

// Table holds rows of string cells under named columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// Cell locates one value.
type Cell struct {
	Row    int
	Column int
	Name   string
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{index: map[string]int{}}
	for _, column := range columns {
		t.EnsureColumn(column)
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether name is a column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// EnsureColumn appends name as a blank column when absent and returns its
// position.
func (t *Table) EnsureColumn(name string) int {
	if pos, ok := t.index[name]; ok {
		return pos
	}
	pos := len(t.columns)
	t.columns = append(t.columns, name)
	t.index[name] = pos
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
	return pos
}

// Grow adds blank rows until the table has at least n rows.
func (t *Table) Grow(n int) {
	for len(t.rows) < n {
		t.rows = append(t.rows, make([]string, len(t.columns)))
	}
}

// Get returns the cell at row and column, or "" when either is absent.
func (t *Table) Get(row int, column string) string {
	pos, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	return t.rows[row][pos]
}

// Filled reports whether the cell holds a non-blank value.
func (t *Table) Filled(row int, column string) bool {
	return strings.TrimSpace(t.Get(row, column)) != ""
}

// Set writes a cell, adding the column and rows as needed.
func (t *Table) Set(row int, column, value string) error {
	if row < 0 {
		return fmt.Errorf("row %d out of range", row)
	}
	pos := t.EnsureColumn(column)
	t.Grow(row + 1)
	t.rows[row][pos] = value
	return nil
}

// Column returns a copy of every value in column.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.rows))
	pos, ok := t.index[name]
	if !ok {
		return out
	}
	for i, row := range t.rows {
		out[i] = row[pos]
	}
	return out
}

// Row returns the values of the named columns for one row.
func (t *Table) Row(row int, columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = t.Get(row, column)
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	clone := New(t.columns...)
	clone.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		clone.rows[i] = append([]string(nil), row...)
	}
	return clone
}

// Missing lists every blank cell in row-major order.
func (t *Table) Missing() []Cell {
	var cells []Cell
	for r, row := range t.rows {
		for c, value := range row {
			if strings.TrimSpace(value) == "" {
				cells = append(cells, Cell{Row: r, Column: c, Name: t.columns[c]})
			}
		}
	}
	return cells
}

// MissingIn lists blank cells restricted to columns and the row range
// [start, end).
func (t *Table) MissingIn(columns []string, start, end int) []Cell {
	var cells []Cell
	end = min(end, len(t.rows))
	for r := max(start, 0); r < end; r++ {
		for _, name := range columns {
			pos, ok := t.index[name]
			if !ok {
				cells = append(cells, Cell{Row: r, Column: -1, Name: name})
				continue
			}
			if strings.TrimSpace(t.rows[r][pos]) == "" {
				cells = append(cells, Cell{Row: r, Column: pos, Name: name})
			}
		}
	}
	return cells
}
