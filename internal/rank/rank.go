package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/sorin-tanasa/Drug-analyzer/internal/config"
	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// Column names produced or required by the ranker.
const (
	ColumnCompound       = config.ColumnCompound
	ColumnNormalizedName = config.ColumnNormalizedName
	ColumnTotalScore     = config.ColumnTotalScore
	ColumnRank           = config.ColumnRank

	// ScoreSuffix is appended to a criterion name to form its score column.
	ScoreSuffix = config.ScoreSuffix
)

// Criterion is one ranking criterion and its normalization bounds.
type Criterion struct {
	Name string
	Low  float64
	High float64
}

// Normalize maps v onto the criterion's bounds without clamping.
func (c Criterion) Normalize(v float64) float64 {
	return (v - c.Low) / (c.High - c.Low)
}

// ScoreColumn returns the name of the criterion's score column.
func (c Criterion) ScoreColumn() string { return c.Name + ScoreSuffix }

// FromConfig converts configured criteria, keeping their order.
func FromConfig(cs []config.Criterion) []Criterion {
	out := make([]Criterion, len(cs))
	for i, c := range cs {
		out[i] = Criterion{Name: c.Name, Low: c.Low, High: c.High}
	}
	return out
}

// DefaultCriteria returns TPSA, XLogP, MolecularWeight, HBondAcceptorCount
// and HBondDonorCount with their drug-likeness bounds.
func DefaultCriteria() []Criterion {
	return FromConfig(config.DefaultCriteria())
}

// ValidateCriteria applies the same rules as the config layer: criteria must
// be named, unique, non-degenerate and must not produce colliding columns.
func ValidateCriteria(criteria []Criterion) error {
	cs := make([]config.Criterion, len(criteria))
	for i, c := range criteria {
		cs[i] = config.Criterion{Name: c.Name, Low: c.Low, High: c.High}
	}
	if err := config.ValidateCriteria(cs); err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	return nil
}

// MissingColumnError reports a required column absent from the input table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("rank: missing column %q", e.Column)
}

// NonNumericError reports a criterion cell that is not a finite number.
type NonNumericError struct {
	Row    int // source row index
	Column string
	Value  types.Value
}

func (e *NonNumericError) Error() string {
	return fmt.Sprintf("rank: row %d column %q: non-numeric value %q", e.Row, e.Column, e.Value.String())
}

// Record is the ranking breakdown for one compound.
type Record struct {
	// Index is the row's index in the input table.
	Index    int
	Compound types.Value
	Name     types.Value

	// Values and Scores are in criteria order.
	Values []types.Value
	Scores []float64

	Total float64
	Rank  int
}

// Score computes sub-scores, totals and dense ranks for every row of t and
// returns the records ordered by rank. Rows with equal rank keep their
// input order.
func Score(t *types.Table, criteria []Criterion) ([]Record, error) {
	if err := ValidateCriteria(criteria); err != nil {
		return nil, err
	}

	compoundCol, err := column(t, ColumnCompound)
	if err != nil {
		return nil, err
	}
	nameCol, err := column(t, ColumnNormalizedName)
	if err != nil {
		return nil, err
	}
	critCols := make([]int, len(criteria))
	for i, c := range criteria {
		if critCols[i], err = column(t, c.Name); err != nil {
			return nil, err
		}
	}

	records := make([]Record, len(t.Rows))
	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("rank: row %d has %d values, table has %d columns", rowIndex(t, r), len(row), len(t.Columns))
		}
		rec := Record{
			Index:    rowIndex(t, r),
			Compound: row[compoundCol],
			Name:     row[nameCol],
			Values:   make([]types.Value, len(criteria)),
			Scores:   make([]float64, len(criteria)),
		}
		for i, c := range criteria {
			cell := row[critCols[i]]
			v, ok := cell.Numeric()
			if !ok || math.IsNaN(v) {
				return nil, &NonNumericError{Row: rec.Index, Column: c.Name, Value: cell}
			}
			rec.Values[i] = cell
			rec.Scores[i] = c.Normalize(v)
			rec.Total += rec.Scores[i]
		}
		if math.IsNaN(rec.Total) {
			return nil, fmt.Errorf("rank: row %d: total score is not a number", rec.Index)
		}
		records[r] = rec
	}

	assignDenseRanks(records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Rank < records[j].Rank
	})
	return records, nil
}

// Rank scores t and returns the ranking table, sorted by rank ascending.
// t is not modified.
func Rank(t *types.Table, criteria []Criterion) (*types.Table, error) {
	records, err := Score(t, criteria)
	if err != nil {
		return nil, err
	}
	return Table(records, criteria), nil
}

// Table renders records as a ranking table. The compound, name, criterion
// and score columns are sorted by name, then Total Score and Rank follow.
func Table(records []Record, criteria []Criterion) *types.Table {
	type source struct {
		name string
		get  func(Record) types.Value
	}
	sources := []source{
		{ColumnCompound, func(r Record) types.Value { return r.Compound }},
		{ColumnNormalizedName, func(r Record) types.Value { return r.Name }},
	}
	for i, c := range criteria {
		sources = append(sources,
			source{c.Name, func(r Record) types.Value { return r.Values[i] }},
			source{c.ScoreColumn(), func(r Record) types.Value { return types.Float(r.Scores[i]) }},
		)
	}
	sort.SliceStable(sources, func(i, j int) bool { return sources[i].name < sources[j].name })

	out := &types.Table{
		Columns: make([]string, 0, len(sources)+2),
		Rows:    make([]types.Row, len(records)),
		Index:   make([]int, len(records)),
	}
	for _, s := range sources {
		out.Columns = append(out.Columns, s.name)
	}
	out.Columns = append(out.Columns, ColumnTotalScore, ColumnRank)

	for r, rec := range records {
		row := make(types.Row, 0, len(out.Columns))
		for _, s := range sources {
			row = append(row, s.get(rec))
		}
		row = append(row, types.Float(rec.Total), types.Int(int64(rec.Rank)))
		out.Rows[r] = row
		out.Index[r] = rec.Index
	}
	return out
}

// assignDenseRanks sets Rank on every record: 1 for the highest total, ties
// share a rank, and the next distinct total gets the next integer.
func assignDenseRanks(records []Record) {
	totals := make([]float64, 0, len(records))
	for _, r := range records {
		totals = append(totals, r.Total)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(totals)))

	ranks := make(map[float64]int, len(totals))
	next := 1
	for i, v := range totals {
		if i > 0 && v == totals[i-1] {
			continue
		}
		ranks[v] = next
		next++
	}
	for i := range records {
		records[i].Rank = ranks[records[i].Total]
	}
}

func column(t *types.Table, name string) (int, error) {
	i, ok := t.Column(name)
	if !ok {
		return -1, &MissingColumnError{Column: name}
	}
	return i, nil
}

// rowIndex returns the source index of row r, falling back to its position
// when the table carries no index.
func rowIndex(t *types.Table, r int) int {
	if r < len(t.Index) {
		return t.Index[r]
	}
	return r
}
