package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/sorin-tanasa/Drug-analyzer/internal/coerce"
	"github.com/sorin-tanasa/Drug-analyzer/internal/config"
	"github.com/sorin-tanasa/Drug-analyzer/internal/pubchem"
	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// Fixed leading columns of the features table.
const (
	ColumnCompound       = config.ColumnCompound
	ColumnNormalizedName = config.ColumnNormalizedName
)

// ErrMissingTitle is returned when the property list has no "Title" entry,
// which is needed to derive the normalized name.
var ErrMissingTitle = fmt.Errorf("fetcher: properties must include %q", config.TitleProperty)

// Source looks up a single property of a single compound.
// *pubchem.Client implements it.
type Source interface {
	Property(ctx context.Context, compound, property string) (any, error)
}

// Stats summarises the lookups made by one Fetch call.
type Stats struct {
	Compounds int
	Requests  int

	// Failed counts requests that got no usable response, keyed by HTTP
	// status code. Transport errors are counted under 0.
	Failed map[int]int

	// NotFound counts successful responses that did not carry the value.
	NotFound int
}

// FailedTotal returns the number of failed requests across all status codes.
func (s Stats) FailedTotal() int {
	var n int
	for _, c := range s.Failed {
		n += c
	}
	return n
}

// Columns returns the features table schema for the given property list:
// Compound, Normalized name, then every property except Title, in order.
func Columns(properties []string) []string {
	cols := make([]string, 0, len(properties)+1)
	cols = append(cols, ColumnCompound, ColumnNormalizedName)
	for _, p := range properties {
		if p != config.TitleProperty {
			cols = append(cols, p)
		}
	}
	return cols
}

// Fetch looks up every property for every compound and returns the
// assembled table. Rows follow the order of compounds; duplicates are kept.
//
// Only ctx cancellation and a missing Title property are returned as errors.
func Fetch(ctx context.Context, src Source, compounds, properties []string) (*types.Table, Stats, error) {
	stats := Stats{Failed: make(map[int]int)}

	if !hasTitle(properties) {
		return nil, stats, ErrMissingTitle
	}

	tbl := types.NewTable(Columns(properties)...)
	upper := cases.Upper(language.Und)

	for _, compound := range compounds {
		row := make(types.Row, 0, len(tbl.Columns))
		row = append(row, types.Text(compound), types.Text(""))

		for _, prop := range properties {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
			stats.Requests++

			raw, err := src.Property(ctx, compound, prop)
			v := types.Text("")
			switch {
			case err == nil:
				if prop == config.TitleProperty {
					name := norm.NFC.String(upper.String(titleText(raw)))
					row[1] = types.Text(name)
					continue
				}
				v = coerce.JSON(raw)

			case errors.Is(err, pubchem.ErrNotFound):
				stats.NotFound++
				slog.Warn("fetcher: property not found",
					"compound", compound, "property", prop, "err", err)

			default:
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, stats, ctxErr
				}
				code := statusCode(err)
				stats.Failed[code]++
				slog.Warn("fetcher: request failed",
					"compound", compound, "property", prop, "status", code, "err", err)
			}

			if prop != config.TitleProperty {
				row = append(row, v)
			}
		}

		if err := tbl.Append(row); err != nil {
			return nil, stats, fmt.Errorf("fetcher: %w", err)
		}
		stats.Compounds++
		slog.Info("fetcher: compound", "compound", compound, "name", row[1].Text())
	}

	return tbl, stats, nil
}

func hasTitle(properties []string) bool {
	for _, p := range properties {
		if p == config.TitleProperty {
			return true
		}
	}
	return false
}

// titleText renders a raw Title value as text.
func titleText(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

// statusCode returns the HTTP status carried by err, or 0 for transport errors.
func statusCode(err error) int {
	var se *pubchem.StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
