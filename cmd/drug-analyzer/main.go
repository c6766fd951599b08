package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sorin-tanasa/Drug-analyzer/internal/config"
	"github.com/sorin-tanasa/Drug-analyzer/internal/pipeline"
	"github.com/sorin-tanasa/Drug-analyzer/internal/pubchem"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	compounds := flag.String("compounds", "", "override input.compounds_file")
	out := flag.String("out", "", "override output.xlsx_path")
	watch := flag.Bool("watch", false, "re-run whenever the config or compounds file changes")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *compounds, *out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))

	slog.Info("drug-analyzer starting",
		"config", *configPath,
		"compounds_file", cfg.Input.CompoundsFile,
		"xlsx", cfg.Output.XLSXPath,
		"properties", len(cfg.Properties),
		"criteria", len(cfg.Ranking.Criteria),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runOnce(ctx, cfg); err != nil {
		slog.Error("run failed", "err", err)
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}

	reload := func() (*config.Config, error) { return loadConfig(*configPath, *compounds, *out) }
	err = watchAndRun(ctx, *configPath, cfg, reload, runOnce)
	if err != nil {
		slog.Error("watcher stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("drug-analyzer shutting down")
}

// watchAndRun re-runs the analysis whenever the config file or the current
// compounds file changes. When a reloaded config names a different compounds
// file, the watch is restarted on the new path.
func watchAndRun(
	ctx context.Context,
	configPath string,
	cfg *config.Config,
	reload func() (*config.Config, error),
	run func(context.Context, *config.Config) error,
) error {
	for {
		paths := []string{cfg.Input.CompoundsFile}
		if configPath != "" {
			paths = append(paths, configPath)
		}

		wctx, stop := context.WithCancel(ctx)
		restart := false
		err := config.Watch(wctx, paths, func(changed string) {
			if configPath != "" && sameFile(changed, configPath) {
				updated, err := reload()
				if err != nil {
					slog.Error("config reload failed, keeping previous config", "err", err)
					return
				}
				if !sameFile(updated.Input.CompoundsFile, cfg.Input.CompoundsFile) {
					if _, err := os.Stat(updated.Input.CompoundsFile); err != nil {
						slog.Error("config reload failed, keeping previous config", "err", err)
						return
					}
					restart = true
					stop()
				}
				cfg = updated
				slog.SetDefault(newLogger(cfg.Log))
				slog.Info("config reloaded", "path", configPath, "compounds_file", cfg.Input.CompoundsFile)
			}
			if err := run(ctx, cfg); err != nil {
				slog.Error("run failed", "err", err)
			}
		})
		stop()
		if err != nil {
			return err
		}
		if !restart || ctx.Err() != nil {
			return nil
		}
	}
}

// loadConfig reads path (or the defaults when path is empty) and applies the
// command-line overrides.
func loadConfig(path, compounds, out string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if compounds != "" {
		cfg.Input.CompoundsFile = compounds
	}
	if out != "" {
		cfg.Output.XLSXPath = out
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// runOnce builds a fresh client for cfg and performs one analysis.
func runOnce(ctx context.Context, cfg *config.Config) error {
	client, err := pubchem.New(cfg.PubChem)
	if err != nil {
		return err
	}
	res, err := pipeline.New(cfg, client, os.Stdout).Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("run complete",
		"compounds", len(res.Compounds),
		"ranked", res.Ranking.Len(),
		"failed_requests", res.Stats.FailedTotal(),
		"duration", res.Metrics.Finished.Sub(res.Metrics.Started),
	)
	return nil
}

func newLogger(lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func sameFile(a, b string) bool {
	ai, aerr := os.Stat(a)
	bi, berr := os.Stat(b)
	if aerr == nil && berr == nil {
		return os.SameFile(ai, bi)
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
