// Package input reads the list of compounds to analyze.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadCompounds returns the non-empty values of column from the CSV file at
// path, in file order. The first record is the header.
func ReadCompounds(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open compounds file: %w", err)
	}
	defer f.Close()

	names, err := ParseCompounds(f, column)
	if err != nil {
		return nil, fmt.Errorf("input: %s: %w", path, err)
	}
	return names, nil
}

// ParseCompounds reads compound names from CSV data. A UTF-8 byte order mark,
// as written by spreadsheet software, is stripped.
func ParseCompounds(r io.Reader, column string) ([]string, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in header %v", column, header)
	}

	var names []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if idx >= len(rec) {
			continue
		}
		if name := strings.TrimSpace(rec[idx]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
