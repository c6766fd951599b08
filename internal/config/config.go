package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultBaseURL        = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultTimeout        = 30 * time.Second
	DefaultUserAgent      = "drug-analyzer/1.0"
	DefaultCompoundsFile  = "compounds.csv"
	DefaultCompoundColumn = "Compound"
	DefaultXLSXPath       = "results.xlsx"
	DefaultFeaturesSheet  = "Drug features table"
	DefaultRankingSheet   = "Ranking table"
	DefaultLogFormat      = "text"
	DefaultLogLevel       = "info"
)

// TitleProperty is the property whose upper-cased value becomes the
// normalized compound name. It must always be requested.
const TitleProperty = "Title"

// Column names fixed by the output tables. Properties and criteria may not
// reuse them.
const (
	ColumnCompound       = "Compound"
	ColumnNormalizedName = "Normalized name"
	ColumnTotalScore     = "Total Score"
	ColumnRank           = "Rank"

	// ScoreSuffix is appended to a criterion name to form its score column.
	ScoreSuffix = " Score"
)

// DefaultProperties is the PubChem property list requested when the config
// does not name one. Order defines the column order of the features table.
var DefaultProperties = []string{
	"Title", "MolecularFormula", "MolecularWeight", "CanonicalSMILES", "IsomericSMILES",
	"InChI", "InChIKey", "IUPACName", "XLogP", "ExactMass", "MonoisotopicMass", "TPSA",
	"Complexity", "Charge", "HBondDonorCount", "HBondAcceptorCount", "RotatableBondCount",
}

// Config is the top-level configuration. Fields map 1:1 to config.example.yaml.
type Config struct {
	Input      InputConfig   `yaml:"input"`
	PubChem    PubChemConfig `yaml:"pubchem"`
	Properties []string      `yaml:"properties"`
	Ranking    RankingConfig `yaml:"ranking"`
	Output     OutputConfig  `yaml:"output"`
	Log        LogConfig     `yaml:"log"`
}

// InputConfig locates the compound list.
type InputConfig struct {
	// CompoundsFile is a CSV file with one compound name per record.
	CompoundsFile string `yaml:"compounds_file"`

	// Column is the header of the column holding the compound names.
	Column string `yaml:"column"`
}

// PubChemConfig controls the HTTP client used for property lookups.
type PubChemConfig struct {
	// BaseURL is the PUG REST root, without a trailing slash.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each individual request.
	Timeout time.Duration `yaml:"timeout"`

	// RequestInterval is a fixed pause between consecutive requests.
	// Zero disables pacing.
	RequestInterval time.Duration `yaml:"request_interval"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`

	// TLS holds optional TLS dial options.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS dial options.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification.
	// Only use this behind an intercepting proxy in development.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// RankingConfig lists the ranking criteria in the order they are evaluated.
type RankingConfig struct {
	Criteria []Criterion `yaml:"criteria"`
}

// Criterion is one ranking criterion and its normalization bounds.
type Criterion struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	// XLSXPath is the workbook written at the end of the run. It is overwritten.
	XLSXPath string `yaml:"xlsx_path"`

	// FeaturesSheet and RankingSheet name the two worksheets.
	FeaturesSheet string `yaml:"features_sheet"`
	RankingSheet  string `yaml:"ranking_sheet"`

	// WriteIndex adds a leading unnamed column holding each row's index.
	WriteIndex bool `yaml:"write_index"`

	// SQLitePath, when set, also writes both tables to a SQLite database.
	SQLitePath string `yaml:"sqlite_path"`

	// MetricsPath, when set, writes run counters in Prometheus text format.
	MetricsPath string `yaml:"metrics_path"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Format is one of: text | json.
	Format string `yaml:"format"`

	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	fillEmpty(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			CompoundsFile: DefaultCompoundsFile,
			Column:        DefaultCompoundColumn,
		},
		PubChem: PubChemConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Properties: append([]string(nil), DefaultProperties...),
		Ranking:    RankingConfig{Criteria: DefaultCriteria()},
		Output: OutputConfig{
			XLSXPath:      DefaultXLSXPath,
			FeaturesSheet: DefaultFeaturesSheet,
			RankingSheet:  DefaultRankingSheet,
			WriteIndex:    true,
		},
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
	}
}

// DefaultCriteria returns the five drug-likeness criteria with their
// normalization bounds.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{Name: "TPSA", Low: 0, High: 140},
		{Name: "XLogP", Low: 1, High: 5},
		{Name: "MolecularWeight", Low: 0, High: 500},
		{Name: "HBondAcceptorCount", Low: 0, High: 10},
		{Name: "HBondDonorCount", Low: 0, High: 5},
	}
}

// fillEmpty restores defaults for lists that YAML set to an explicit empty value.
func fillEmpty(cfg *Config) {
	if len(cfg.Properties) == 0 {
		cfg.Properties = append([]string(nil), DefaultProperties...)
	}
	if len(cfg.Ranking.Criteria) == 0 {
		cfg.Ranking.Criteria = DefaultCriteria()
	}
}

// Validate checks required fields and structural constraints.
func Validate(cfg *Config) error {
	if cfg.Input.CompoundsFile == "" {
		return fmt.Errorf("input.compounds_file is required")
	}
	if cfg.Input.Column == "" {
		return fmt.Errorf("input.column is required")
	}
	if cfg.PubChem.BaseURL == "" {
		return fmt.Errorf("pubchem.base_url is required")
	}
	if cfg.PubChem.Timeout <= 0 {
		return fmt.Errorf("pubchem.timeout must be positive")
	}
	if cfg.PubChem.RequestInterval < 0 {
		return fmt.Errorf("pubchem.request_interval must not be negative")
	}

	seen := make(map[string]bool, len(cfg.Properties))
	hasTitle := false
	for i, p := range cfg.Properties {
		if p == "" {
			return fmt.Errorf("properties[%d]: empty property name", i)
		}
		if seen[p] {
			return fmt.Errorf("properties[%d]: duplicate property %q", i, p)
		}
		if p == ColumnCompound || p == ColumnNormalizedName {
			return fmt.Errorf("properties[%d]: %q collides with a features column", i, p)
		}
		seen[p] = true
		if p == TitleProperty {
			hasTitle = true
		}
	}
	if !hasTitle {
		return fmt.Errorf("properties must include %q", TitleProperty)
	}

	if err := ValidateCriteria(cfg.Ranking.Criteria); err != nil {
		return err
	}
	for i, c := range cfg.Ranking.Criteria {
		if c.Name == TitleProperty {
			return fmt.Errorf("ranking.criteria[%d]: %q is text and cannot be ranked", i, c.Name)
		}
		if !seen[c.Name] {
			return fmt.Errorf("ranking.criteria[%d] %q: not in properties", i, c.Name)
		}
	}

	if cfg.Output.XLSXPath == "" {
		return fmt.Errorf("output.xlsx_path is required")
	}
	if cfg.Output.FeaturesSheet == "" || cfg.Output.RankingSheet == "" {
		return fmt.Errorf("output sheet names are required")
	}
	if cfg.Output.FeaturesSheet == cfg.Output.RankingSheet {
		return fmt.Errorf("output sheet names must differ")
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	return nil
}

// ValidateCriteria checks that criteria are named, unique, have distinct
// bounds and do not collide with a fixed column or another criterion's
// score column.
func ValidateCriteria(criteria []Criterion) error {
	if len(criteria) == 0 {
		return fmt.Errorf("ranking.criteria: at least one criterion is required")
	}
	names := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		names[c.Name] = false
	}
	for i, c := range criteria {
		switch c.Name {
		case "":
			return fmt.Errorf("ranking.criteria[%d]: name is required", i)
		case ColumnCompound, ColumnNormalizedName, ColumnTotalScore, ColumnRank:
			return fmt.Errorf("ranking.criteria[%d] %q: collides with an output column", i, c.Name)
		}
		if names[c.Name] {
			return fmt.Errorf("ranking.criteria[%d] %q: duplicate criterion", i, c.Name)
		}
		names[c.Name] = true
		if _, ok := names[c.Name+ScoreSuffix]; ok {
			return fmt.Errorf("ranking.criteria[%d] %q: score column collides with criterion %q",
				i, c.Name, c.Name+ScoreSuffix)
		}
		if c.High == c.Low {
			return fmt.Errorf("ranking.criteria[%d] %q: low and high must differ", i, c.Name)
		}
	}
	return nil
}
