// Package types defines the shared in-memory representations used by the
// fetcher, ranker and exporters: the coerced cell Value and the column-ordered
// Table built from them.
package types
