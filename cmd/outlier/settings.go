package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/viant/outlier/config"
)

// addRunFlags registers the flags shared by run and compare. Flags override
// the configuration file only when set explicitly.
func addRunFlags(flags *pflag.FlagSet) {
	flags.String("data", "", "Dataset path (file, or SQLite database for --format sqlite)")
	flags.String("format", "", "Dataset format (csv-weight-height, moments, fasta, sqlite)")
	flags.String("table", "", "Items table for --format sqlite")
	flags.String("metric", "", "Distance metric (l2, cosine, levenshtein)")
	flags.Int("knn", 0, "Neighbors per item used for scoring")
	flags.Int("k", 0, "Centroids per divisive step")
	flags.Int("n", 0, "Number of outliers to report")
	flags.Int("max-cluster-size", 0, "Largest group left unsplit")
	flags.Uint64("seed", 0, "Random seed for centroid sampling (0 = time based)")
	flags.Int("workers", 0, "Goroutines evaluating distances")
	flags.Int("max-rounds", 0, "Abort after this many refinement rounds (0 = unbounded)")
	flags.Duration("timeout", 0, "Abort the run after this long (0 = no timeout)")
	flags.String("out", "", "Append reports to this JSON lines file")
	flags.String("db", "", "Record reports in this SQLite database")
}

// loadConfig reads --config and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	for name, target := range map[string]*string{
		"data":       &cfg.Dataset.Path,
		"format":     &cfg.Dataset.Format,
		"table":      &cfg.Dataset.Table,
		"metric":     &cfg.Dataset.Metric,
		"out":        &cfg.Output.JSONL,
		"db":         &cfg.Output.DB,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	} {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	for name, target := range map[string]*int{
		"knn":              &cfg.Params.KNN,
		"k":                &cfg.Params.K,
		"n":                &cfg.Params.N,
		"max-cluster-size": &cfg.Params.MaxClusterSize,
		"workers":          &cfg.Run.Workers,
		"max-rounds":       &cfg.Run.MaxRounds,
	} {
		if flags.Changed(name) {
			*target, _ = flags.GetInt(name)
		}
	}
	if flags.Changed("seed") {
		cfg.Run.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("timeout") {
		cfg.Run.Timeout, _ = flags.GetDuration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
