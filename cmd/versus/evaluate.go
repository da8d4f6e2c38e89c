package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spboyer/versus/internal/cache"
	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/metrics"
	"github.com/spboyer/versus/internal/models"
	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spf13/cobra"
)

// evalFlags are the convention flags shared by every evaluating command.
// A flag only overrides .versus.yaml when it was set explicitly.
type evalFlags struct {
	positiveLabel   string
	positiveRule    string
	boundary        string
	correctness     string
	mapeDenominator string
	workers         int
	noCache         bool
}

func (f *evalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.positiveLabel, "positive", "", "Truth value to treat as the positive class")
	cmd.Flags().StringVar(&f.positiveRule, "positive-rule", projectconfig.DefaultPositiveRule,
		"How the positive class is chosen without --positive: first-seen or lexical")
	cmd.Flags().StringVar(&f.boundary, "boundary", projectconfig.DefaultBoundary,
		"How scores equal to a threshold are counted: inclusive or double-count")
	cmd.Flags().StringVar(&f.correctness, "correctness", projectconfig.DefaultCorrectness,
		"What makes a thresholded prediction correct: label-match or class")
	cmd.Flags().StringVar(&f.mapeDenominator, "mape-denominator", projectconfig.DefaultMAPEDenominator,
		"What MAPE divides each error by: truth or model-a")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "ROC sweep parallelism (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "Bypass the result cache even if enabled in config")
}

// options merges config values with explicitly set flags and validates the result.
func (f *evalFlags) options(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) (evaluation.Options, error) {
	ev := cfg.Evaluation
	opts := evaluation.Options{
		PositiveLabel:   ev.PositiveLabel,
		PositiveRule:    models.PositiveRule(ev.PositiveRule),
		Boundary:        metrics.Boundary(ev.Boundary),
		Correctness:     metrics.Correctness(ev.Correctness),
		MAPEDenominator: metrics.MAPEDenominator(ev.MAPEDenominator),
		Workers:         ev.Workers,
	}

	flags := cmd.Flags()
	if flags.Changed("positive") {
		opts.PositiveLabel = f.positiveLabel
	}
	if flags.Changed("positive-rule") {
		opts.PositiveRule = models.PositiveRule(f.positiveRule)
	}
	if flags.Changed("boundary") {
		opts.Boundary = metrics.Boundary(f.boundary)
	}
	if flags.Changed("correctness") {
		opts.Correctness = metrics.Correctness(f.correctness)
	}
	if flags.Changed("mape-denominator") {
		opts.MAPEDenominator = metrics.MAPEDenominator(f.mapeDenominator)
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}

	return opts.Normalize()
}

// service builds an evaluation service, with the result cache when enabled.
func (f *evalFlags) service(cfg *projectconfig.ProjectConfig) *evaluation.Service {
	opts := []evaluation.Option{evaluation.WithLogger(slog.Default())}
	if cfg.CacheEnabled() && !f.noCache {
		opts = append(opts, evaluation.WithCache(cache.New(cfg.Cache.Dir)))
	}
	return evaluation.New(opts...)
}

// setup loads config and resolves options and service for an evaluating command.
func (f *evalFlags) setup(cmd *cobra.Command) (*projectconfig.ProjectConfig, *evaluation.Service, evaluation.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, evaluation.Options{}, err
	}
	opts, err := f.options(cmd, cfg)
	if err != nil {
		return nil, nil, evaluation.Options{}, err
	}
	return cfg, f.service(cfg), opts, nil
}

// readInput returns the CSV text at path and a display name for it.
// "-" reads standard input.
func readInput(cmd *cobra.Command, path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), filepath.Base(path), nil
}
