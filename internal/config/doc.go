// Package config loads and watches the analyzer configuration file.
//
// Top-level types:
//   - Config{Input, PubChem, Properties, Ranking, Output, Log}: full tree
//     parsed from YAML
//   - PubChemConfig: base_url, timeout, request_interval, user_agent, tls
//   - RankingConfig: ordered criteria list, each {name, low, high}
//   - OutputConfig: xlsx path and sheet names, write_index, optional sqlite
//     and metrics paths
//
// Load(path) reads the YAML file, applies defaults (PubChem PUG REST base URL,
// the seventeen standard properties, the five drug-likeness criteria,
// results.xlsx), then validates required fields. Default() returns the same
// defaults without reading a file.
//
// Watch(ctx, paths, onChange) uses fsnotify to detect writes to any of the
// given files and calls onChange after each one.
package config
