package export

import (
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// WriteText renders t as whitespace-aligned columns, one row per line.
func WriteText(w io.Writer, t *types.Table, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := make([]string, 0, len(t.Columns)+1)
	if opts.WriteIndex {
		header = append(header, "")
	}
	header = append(header, t.Columns...)
	if _, err := io.WriteString(tw, strings.Join(header, "\t")+"\n"); err != nil {
		return err
	}

	cells := make([]string, 0, len(header))
	for r, row := range t.Rows {
		cells = cells[:0]
		if opts.WriteIndex {
			cells = append(cells, strconv.Itoa(indexOf(t, r)))
		}
		for _, v := range row {
			cells = append(cells, v.String())
		}
		if _, err := io.WriteString(tw, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
