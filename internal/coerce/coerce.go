package coerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// Value coerces raw into an integer, a float or text, in that order of
// preference. Surrounding whitespace is ignored for the numeric attempts but
// kept in the text fallback.
func Value(raw string) types.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return types.Text(raw)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return types.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return types.Float(f)
	}
	return types.Text(raw)
}

// JSON coerces a decoded JSON value. Numbers and strings go through Value;
// null becomes empty text; anything else is kept as its text form.
func JSON(v any) types.Value {
	switch t := v.(type) {
	case nil:
		return types.Text("")
	case json.Number:
		return Value(t.String())
	case string:
		return Value(t)
	case float64:
		return Value(strconv.FormatFloat(t, 'g', -1, 64))
	case bool:
		return types.Text(strconv.FormatBool(t))
	default:
		return types.Text(fmt.Sprint(t))
	}
}
