// Package config loads the run configuration used by the outlier command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viant/outlier/dataset"
	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/distance"
	"github.com/viant/outlier/report"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OUTLIER_"

// Config is the complete run configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Params  detect.Params `yaml:"params"`
	Run     RunConfig     `yaml:"run"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// DatasetConfig locates the items and picks their metric.
type DatasetConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	// Table names the items table when Format is sqlite.
	Table  string `yaml:"table"`
	Metric string `yaml:"metric"`
}

// RunConfig tunes a single detection run.
type RunConfig struct {
	// Seed fixes centroid sampling; 0 picks a time-based seed.
	Seed        uint64        `yaml:"seed"`
	Workers     int           `yaml:"workers"`
	MaxRounds   int           `yaml:"max_rounds"`
	StallRounds int           `yaml:"stall_rounds"`
	Timeout     time.Duration `yaml:"timeout"`
}

// OutputConfig names where reports are persisted; empty fields are skipped.
type OutputConfig struct {
	JSONL     string `yaml:"jsonl"`
	DB        string `yaml:"db"`
	RunsTable string `yaml:"runs_table"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used before any file or
// environment override.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Format: string(dataset.FormatMoments),
			Table:  dataset.DefaultTable,
			Metric: string(distance.MetricL2),
		},
		Params: detect.DefaultParams(),
		Run: RunConfig{
			Workers:     1,
			StallRounds: detect.DefaultStallRounds,
		},
		Output: OutputConfig{
			RunsTable: report.DefaultRunsTable,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (when path is
// not empty) and then with OUTLIER_* environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvironment(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvironment(getenv func(string) string) error {
	for name, target := range map[string]*string{
		"DATASET_PATH":   &c.Dataset.Path,
		"DATASET_FORMAT": &c.Dataset.Format,
		"METRIC":         &c.Dataset.Metric,
		"OUTPUT_JSONL":   &c.Output.JSONL,
		"OUTPUT_DB":      &c.Output.DB,
		"LOG_LEVEL":      &c.Log.Level,
		"LOG_FORMAT":     &c.Log.Format,
	} {
		if v := getenv(EnvPrefix + name); v != "" {
			*target = v
		}
	}
	if v := getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %sWORKERS %q: %w", EnvPrefix, v, err)
		}
		c.Run.Workers = n
	}
	if v := getenv(EnvPrefix + "SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid %sSEED %q: %w", EnvPrefix, v, err)
		}
		c.Run.Seed = n
	}
	return nil
}

// Validate checks the settings that do not depend on the dataset size.
func (c *Config) Validate() error {
	format, err := dataset.ParseFormat(c.Dataset.Format)
	if err != nil {
		return err
	}
	metric, err := distance.ParseMetric(c.Dataset.Metric)
	if err != nil {
		return err
	}
	if format.IsText() != metric.IsText() && format != dataset.FormatSQLite {
		return fmt.Errorf("config: metric %s cannot score %s items", metric, format)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("config: dataset path is required")
	}
	if format == dataset.FormatSQLite {
		if err := dataset.ValidateTable(c.Dataset.Table); err != nil {
			return err
		}
	}
	if err := c.Params.ValidateShape(); err != nil {
		return err
	}
	if c.Run.Workers < 0 || c.Run.MaxRounds < 0 || c.Run.StallRounds < 0 || c.Run.Timeout < 0 {
		return fmt.Errorf("config: run settings must not be negative")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: unsupported log level %q", l.Level)
	}
	return level, nil
}

// Options converts the run settings into detector options.
func (c *Config) Options() []detect.Option {
	opts := []detect.Option{
		detect.WithWorkers(c.Run.Workers),
		detect.WithMaxRounds(c.Run.MaxRounds),
		detect.WithStallRounds(c.Run.StallRounds),
	}
	if c.Run.Seed != 0 {
		opts = append(opts, detect.WithSeed(c.Run.Seed))
	}
	return opts
}
