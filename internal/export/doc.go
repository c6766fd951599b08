// Package export writes result tables to disk and to the terminal.
//
//   - WriteXLSX: one workbook, one worksheet per table, numeric cells kept
//     numeric, optional leading index column.
//   - WriteSQLite: one SQL table per result table, column affinity inferred
//     from the cell kinds.
//   - WriteText: tab-aligned plain text, used to print the ranking.
//
// All file writers replace any existing file at the target path.
package export

import "github.com/sorin-tanasa/Drug-analyzer/pkg/types"

// Named pairs a table with the sheet or SQL table name it is written under.
type Named struct {
	Name  string
	Table *types.Table
}

// Options control how tables are laid out.
type Options struct {
	// WriteIndex adds a leading column with each row's index, unnamed in
	// XLSX and text output and called "index" in SQLite.
	WriteIndex bool
}

// indexOf returns the index value for row r of t.
func indexOf(t *types.Table, r int) int {
	if r < len(t.Index) {
		return t.Index[r]
	}
	return r
}
