package types

import "fmt"

// Row is the ordered list of cell values for one compound.
type Row []Value

// Table is a column-ordered set of rows sharing one schema.
//
// Index holds the position each row had in the table it was derived from,
// so a reordered table can still be traced back to its source row. A fresh
// table numbers its rows 0..n-1.
type Table struct {
	Columns []string
	Rows    []Row
	Index   []int
}

// NewTable returns an empty table with the given column schema.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds row to the end of the table. The row must have exactly one
// value per column.
func (t *Table) Append(row Row) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("types: row has %d values, table has %d columns", len(row), len(t.Columns))
	}
	t.Index = append(t.Index, len(t.Rows))
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the position of the named column.
func (t *Table) Column(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
		Index:   append([]int(nil), t.Index...),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}
