package sqlscan

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/distance"
)

type scanOptions struct {
	params  detect.Params
	metric  distance.Metric
	seed    uint64
	workers int
	timeout time.Duration
}

// parseScanOptions reads key=value module arguments. Unknown keys and
// arguments without '=' are ignored.
func parseScanOptions(args []string) (scanOptions, error) {
	opts := scanOptions{
		params: detect.DefaultParams(),
		metric: distance.MetricL2,
	}
	for _, raw := range args {
		a := strings.TrimSpace(raw)
		if a == "" {
			continue
		}
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.Trim(strings.TrimSpace(parts[1]), `'"`)
		var target *int
		switch key {
		case "knn":
			target = &opts.params.KNN
		case "k":
			target = &opts.params.K
		case "n":
			target = &opts.params.N
		case "max_cluster_size":
			target = &opts.params.MaxClusterSize
		case "workers":
			target = &opts.workers
		case "metric":
			m, err := distance.ParseMetric(val)
			if err != nil {
				return opts, fmt.Errorf("outlier_scan: %w", err)
			}
			opts.metric = m
		case "seed":
			seed, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return opts, fmt.Errorf("outlier_scan: invalid seed %q", val)
			}
			opts.seed = seed
		case "timeout":
			d, err := time.ParseDuration(val)
			if err != nil || d < 0 {
				return opts, fmt.Errorf("outlier_scan: invalid timeout %q", val)
			}
			opts.timeout = d
		}
		if target != nil {
			n, err := strconv.Atoi(val)
			if err != nil {
				return opts, fmt.Errorf("outlier_scan: invalid %s %q", key, val)
			}
			*target = n
		}
	}
	return opts, nil
}

func (o scanOptions) detectOptions(base []detect.Option) []detect.Option {
	opts := append([]detect.Option(nil), base...)
	if o.seed != 0 {
		opts = append(opts, detect.WithSeed(o.seed))
	}
	if o.workers > 0 {
		opts = append(opts, detect.WithWorkers(o.workers))
	}
	return opts
}

// scanContext bounds one scan. SQLite does not hand the query context to a
// virtual table, so the timeout argument is the only limit; zero means none.
func (o scanOptions) scanContext() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(context.Background(), o.timeout)
	}
	return context.WithCancel(context.Background())
}
