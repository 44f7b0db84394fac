package detect

import (
	"log/slog"
	"time"
)

// DefaultStallRounds is the number of consecutive rounds without a new
// verification after which a run fails with a *StagnationError.
const DefaultStallRounds = 3

// Options holds the resolved run options.
type Options struct {
	Logger      *slog.Logger
	Metrics     MetricsCollector
	Seed        uint64
	Workers     int
	MaxRounds   int
	StallRounds int
}

// Option configures a detector.
type Option func(*Options)

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetricsCollector configures a collector for per-round metrics.
// Pass nil to disable collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *Options) {
		o.Metrics = mc
	}
}

// WithSeed fixes the random source used for centroid sampling, making runs
// reproducible. Without it a time-based seed is used and echoed in the report.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithWorkers sets how many goroutines evaluate distances concurrently.
// Values <= 1 keep the run single-threaded.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithMaxRounds bounds the number of refinement rounds; 0 means unbounded.
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		o.MaxRounds = n
	}
}

// WithStallRounds overrides DefaultStallRounds.
func WithStallRounds(n int) Option {
	return func(o *Options) {
		o.StallRounds = n
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		Seed:        uint64(time.Now().UnixNano()),
		StallRounds: DefaultStallRounds,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetricsCollector{}
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.StallRounds < 1 {
		o.StallRounds = DefaultStallRounds
	}
	return o
}
