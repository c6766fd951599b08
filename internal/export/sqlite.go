package export

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"unicode"

	_ "modernc.org/sqlite"

	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// WriteSQLite writes each table to a SQL table of a new SQLite database at
// path. Table names are derived from Named.Name ("Drug features table"
// becomes drug_features_table). An existing file at path is replaced.
func WriteSQLite(path string, opts Options, tables ...Named) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("export: open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("export: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, nt := range tables {
		if err := writeSQLTable(tx, TableName(nt.Name), nt.Table, opts); err != nil {
			return fmt.Errorf("export: table %q: %w", nt.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

// TableName turns a sheet name into a lower-case SQL identifier.
func TableName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func writeSQLTable(tx *sql.Tx, name string, t *types.Table, opts Options) error {
	var defs, cols []string
	if opts.WriteIndex {
		defs = append(defs, quoteIdent("index")+" INTEGER")
		cols = append(cols, quoteIdent("index"))
	}
	for i, c := range t.Columns {
		defs = append(defs, quoteIdent(c)+" "+affinity(t, i))
		cols = append(cols, quoteIdent(c))
	}

	if _, err := tx.Exec(`CREATE TABLE ` + quoteIdent(name) + ` (` + strings.Join(defs, ", ") + `)`); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return nil
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(`INSERT INTO ` + quoteIdent(name) + ` (` + strings.Join(cols, ", ") + `) VALUES (` + ph + `)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for r, row := range t.Rows {
		args := make([]any, 0, len(cols))
		if opts.WriteIndex {
			args = append(args, indexOf(t, r))
		}
		for _, v := range row {
			args = append(args, v.Any())
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

// affinity picks the SQLite column type for column i: INTEGER when every cell
// is an integer, REAL when every cell is numeric, TEXT otherwise.
func affinity(t *types.Table, i int) string {
	if len(t.Rows) == 0 {
		return "TEXT"
	}
	allInt, allNum := true, true
	for _, row := range t.Rows {
		switch row[i].Kind() {
		case types.KindInt:
		case types.KindFloat:
			allInt = false
		default:
			allInt, allNum = false, false
		}
	}
	switch {
	case allInt:
		return "INTEGER"
	case allNum:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
