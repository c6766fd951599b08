// Package fetcher assembles the compound features table.
//
// Fetch issues one lookup per (compound, property) pair, strictly in order,
// and appends one row per compound: the compound name, the normalized name
// (upper-cased Title), then every other requested property coerced to
// int/float/text. Lookup failures never abort the run; they are logged and
// leave an empty-text placeholder so every row keeps the table's arity.
package fetcher
