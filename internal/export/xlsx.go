package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// WriteXLSX writes each table to its own worksheet of a new workbook at path,
// in the order given. An existing file at path is replaced.
func WriteXLSX(path string, opts Options, sheets ...Named) (err error) {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets to write")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close workbook: %w", cerr)
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return fmt.Errorf("export: sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("export: sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s.Name, s.Table, opts, header); err != nil {
			return fmt.Errorf("export: sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)

	// SaveAs truncates, but remove first so a stale file never survives a
	// failed write.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t *types.Table, opts Options, headerStyle int) error {
	offset := 0
	if opts.WriteIndex {
		offset = 1
	}

	header := make([]any, 0, len(t.Columns)+offset)
	if opts.WriteIndex {
		header = append(header, "")
	}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range t.Rows {
		cells := make([]any, 0, len(row)+offset)
		if opts.WriteIndex {
			cells = append(cells, indexOf(t, r))
		}
		for _, v := range row {
			cells = append(cells, v.Any())
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}
