// Package coerce turns raw property values into the most specific cell type.
//
// Value(raw) tries an integer parse, then a float parse, and otherwise keeps
// the text unchanged. It never fails; the numeric/text split it produces is
// what the ranker relies on when it reads criterion columns.
//
// JSON(v) applies the same rule to a value decoded with json.Decoder.UseNumber,
// so numbers keep their literal text and "1.2" stays a float instead of being
// truncated.
package coerce
