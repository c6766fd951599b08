// Package pipeline runs one analysis end to end: read compounds, fetch their
// properties, rank them, print the ranking and write the output files.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sorin-tanasa/Drug-analyzer/internal/config"
	"github.com/sorin-tanasa/Drug-analyzer/internal/export"
	"github.com/sorin-tanasa/Drug-analyzer/internal/fetcher"
	"github.com/sorin-tanasa/Drug-analyzer/internal/input"
	"github.com/sorin-tanasa/Drug-analyzer/internal/metrics"
	"github.com/sorin-tanasa/Drug-analyzer/internal/rank"
	"github.com/sorin-tanasa/Drug-analyzer/pkg/types"
)

// Result is what one run produced.
type Result struct {
	Compounds []string
	Features  *types.Table
	Ranking   *types.Table
	Stats     fetcher.Stats
	Metrics   metrics.Run
}

// Runner executes runs against a fixed configuration and property source.
type Runner struct {
	cfg *config.Config
	src fetcher.Source
	out io.Writer
	now func() time.Time // injectable for deterministic tests
}

// New returns a Runner that prints the ranking to out.
func New(cfg *config.Config, src fetcher.Source, out io.Writer) *Runner {
	return &Runner{cfg: cfg, src: src, out: out, now: time.Now}
}

// Run performs one full analysis. File and structural errors are returned;
// per-property lookup failures are logged by the fetcher and do not fail the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.cfg
	res := &Result{Metrics: metrics.Run{Started: r.now()}}

	compounds, err := input.ReadCompounds(cfg.Input.CompoundsFile, cfg.Input.Column)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Compounds = compounds
	slog.Info("pipeline: compounds loaded",
		"file", cfg.Input.CompoundsFile,
		"compounds", len(compounds),
		"properties", len(cfg.Properties),
		"requests", len(compounds)*len(cfg.Properties),
	)

	features, stats, err := fetcher.Fetch(ctx, r.src, compounds, cfg.Properties)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Features, res.Stats = features, stats
	slog.Info("pipeline: properties fetched",
		"rows", features.Len(),
		"requests", stats.Requests,
		"failed", stats.FailedTotal(),
		"not_found", stats.NotFound,
	)

	ranking, err := rank.Rank(features, rank.FromConfig(cfg.Ranking.Criteria))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Ranking = ranking

	opts := export.Options{WriteIndex: cfg.Output.WriteIndex}
	if r.out != nil {
		if err := export.WriteText(r.out, ranking, opts); err != nil {
			return nil, fmt.Errorf("pipeline: print ranking: %w", err)
		}
	}

	sheets := []export.Named{
		{Name: cfg.Output.FeaturesSheet, Table: features},
		{Name: cfg.Output.RankingSheet, Table: ranking},
	}
	if err := export.WriteXLSX(cfg.Output.XLSXPath, opts, sheets...); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	slog.Info("pipeline: workbook written", "path", cfg.Output.XLSXPath)

	if cfg.Output.SQLitePath != "" {
		if err := export.WriteSQLite(cfg.Output.SQLitePath, opts, sheets...); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		slog.Info("pipeline: sqlite database written", "path", cfg.Output.SQLitePath)
	}

	res.Metrics.Compounds = stats.Compounds
	res.Metrics.Requests = stats.Requests
	res.Metrics.Failed = stats.Failed
	res.Metrics.NotFound = stats.NotFound
	res.Metrics.Ranked = ranking.Len()
	res.Metrics.Finished = r.now()

	if cfg.Output.MetricsPath != "" {
		if err := res.Metrics.WriteFile(cfg.Output.MetricsPath); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		slog.Debug("pipeline: metrics written", "path", cfg.Output.MetricsPath)
	}

	return res, nil
}
