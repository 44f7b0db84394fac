package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/viant/outlier/config"
	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/detect/bruteforce"
	"github.com/viant/outlier/detect/dhca"
	"github.com/viant/outlier/engine"
	"github.com/viant/outlier/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rank the top-N outliers of a dataset",
		Long: `Run the clustering detector and print its report as JSON.

Examples:
  outlier run --data ColorMoments.asc --format moments --knn 20 --k 5 --n 10
  outlier run --config weights.yaml --out out/weights_heights.jsonl
  outlier run --data genes.data --format fasta --metric levenshtein --knn 3 --k 3 --n 3 --max-cluster-size 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			ctx, cancel := runContext(cmd.Context(), cfg)
			defer cancel()

			j, err := loadJob(ctx, cfg)
			if err != nil {
				return err
			}
			logger.Info("dataset loaded", "dataset", j.name, "size", j.size)
			rep, err := j.run(ctx, dhca.Algorithm, runOptions(cfg, logger)...)
			if err != nil {
				return err
			}
			logger.Info("outliers ranked",
				"verifiedPercentage", rep.VerifiedPercentage(),
				"calculationPercentage", rep.CalculationPercentage(),
			)
			if err := persist(ctx, cfg, j.name, rep); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the clustering and brute-force detectors and compare them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			ctx, cancel := runContext(cmd.Context(), cfg)
			defer cancel()

			j, err := loadJob(ctx, cfg)
			if err != nil {
				return err
			}
			result := comparison{}
			if result.DHCA, err = j.run(ctx, dhca.Algorithm, runOptions(cfg, logger)...); err != nil {
				return err
			}
			if result.BruteForce, err = j.run(ctx, bruteforce.Algorithm, runOptions(cfg, logger)...); err != nil {
				return err
			}
			result.Agree = result.DHCA.SameOutliers(result.BruteForce)
			if !result.Agree {
				logger.Warn("rankings differ", "dhca", result.DHCA.OutlierIndexes, "bruteforce", result.BruteForce.OutlierIndexes)
			}
			for _, rep := range []*detect.Report{result.DHCA, result.BruteForce} {
				if err := persist(ctx, cfg, j.name, rep); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

type comparison struct {
	DHCA       *detect.Report `json:"dhca"`
	BruteForce *detect.Report `json:"bruteforce"`
	Agree      bool           `json:"agree"`
}

func runOptions(cfg *config.Config, logger *slog.Logger) []detect.Option {
	return append(cfg.Options(), detect.WithLogger(logger))
}

func runContext(parent context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if cfg.Run.Timeout > 0 {
		return context.WithTimeout(parent, cfg.Run.Timeout)
	}
	return context.WithCancel(parent)
}

// persist appends rep to the configured JSON lines file and runs table.
func persist(ctx context.Context, cfg *config.Config, datasetName string, rep *detect.Report) error {
	if cfg.Output.JSONL != "" {
		if err := report.AppendFile(cfg.Output.JSONL, rep); err != nil {
			return err
		}
	}
	if cfg.Output.DB == "" {
		return nil
	}
	db, err := engine.OpenContext(ctx, cfg.Output.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	store, err := report.NewStore(ctx, db, cfg.Output.RunsTable)
	if err != nil {
		return err
	}
	if _, err := store.Save(ctx, datasetName, rep); err != nil {
		return err
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
