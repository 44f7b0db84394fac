package dhca

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/distance"
	"github.com/viant/outlier/internal/cluster"
	"github.com/viant/outlier/internal/distcache"
)

// Algorithm is the name reported by this detector.
const Algorithm = "dhca"

// Detector finds outliers with divisive hierarchical clustering. A Detector
// holds no state between runs; every Detect call starts from scratch.
type Detector[T any] struct {
	data   []T
	metric distance.Func[T]
	params detect.Params
	opts   detect.Options
}

// New validates the parameters against data and returns a detector. No
// distance is evaluated when validation fails.
func New[T any](data []T, metric distance.Func[T], params detect.Params, opts ...detect.Option) (*Detector[T], error) {
	if metric == nil {
		return nil, fmt.Errorf("dhca: metric is nil")
	}
	if err := params.Validate(len(data)); err != nil {
		return nil, err
	}
	return &Detector[T]{
		data:   data,
		metric: metric,
		params: params,
		opts:   detect.NewOptions(opts...),
	}, nil
}

// Detect implements detect.Detector.
func (d *Detector[T]) Detect(ctx context.Context) (*detect.Report, error) {
	start := time.Now()
	logger := d.opts.Logger.With("algorithm", Algorithm, "size", len(d.data), "seed", d.opts.Seed)
	cache := distcache.New(func(i, j int) float64 { return d.metric(d.data[i], d.data[j]) })
	report, err := d.run(ctx, cache, logger)
	d.opts.Metrics.RecordRun(cache.Len(), time.Since(start), err)
	if err != nil {
		logger.ErrorContext(ctx, "detection failed", "calculations", cache.Len(), "error", err)
		return nil, err
	}
	report.RunningTimeSeconds = time.Since(start).Seconds()
	logger.InfoContext(ctx, "detection completed",
		"rounds", report.Rounds,
		"verified", report.VerifiedCount,
		"calculations", report.Calculations,
		"ceiling", report.CalculationsCeiling,
	)
	return report, nil
}

func (d *Detector[T]) run(ctx context.Context, cache *distcache.Cache, logger *slog.Logger) (*detect.Report, error) {
	size := len(d.data)
	p := d.params
	state, err := cluster.NewState(cache, size, p.KNN)
	if err != nil {
		return nil, err
	}
	splitter := &cluster.Splitter{
		State:          state,
		K:              p.K,
		MaxClusterSize: p.MaxClusterSize,
		Rand:           rand.New(rand.NewPCG(d.opts.Seed, d.opts.Seed^0x5DEECE66D)),
		Workers:        d.opts.Workers,
	}
	members := make([]int, size)
	for i := range members {
		members[i] = i
	}
	rank := newRanking(size)
	rank.sort(state)
	logger.DebugContext(ctx, "neighbor sets seeded", "kNN", p.KNN, "calculations", cache.Len())

	scores := make([]float64, size)
	round, stalled := 0, 0
	for !rank.topVerified(state, p.N) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d.opts.MaxRounds > 0 && round >= d.opts.MaxRounds {
			return nil, fmt.Errorf("dhca: %w after %d rounds", detect.ErrRoundLimit, round)
		}
		round++
		roundStart := time.Now()
		for i := range scores {
			scores[i] = state.Score(i)
		}
		threshold := stat.Mean(scores, nil) + stat.StdDev(scores, nil)
		centroids := rank.topUnverified(state, p.K)

		stats, err := splitter.Refine(ctx, &cluster.Node{
			Members:       members,
			Centroids:     centroids,
			VerifyCenters: true,
		}, threshold)
		if err != nil {
			return nil, err
		}
		rank.sort(state)

		verified := state.VerifiedCount()
		roundStats := detect.RoundStats{
			Round:        round,
			Threshold:    threshold,
			Centroids:    len(centroids),
			Splits:       stats.Splits,
			Pruned:       stats.Pruned,
			Verified:     verified,
			Calculations: cache.Len(),
			Duration:     time.Since(roundStart),
		}
		d.opts.Metrics.RecordRound(roundStats)
		logger.DebugContext(ctx, "round completed",
			"round", round,
			"threshold", threshold,
			"centroids", len(centroids),
			"splits", stats.Splits,
			"pruned", stats.Pruned,
			"verified", verified,
			"calculations", cache.Len(),
		)

		if stats.Verified > 0 {
			stalled = 0
			continue
		}
		if stalled++; stalled >= d.opts.StallRounds {
			return nil, &detect.StagnationError{Round: round, Rounds: stalled, Verified: verified}
		}
	}

	report := &detect.Report{
		Algorithm:           Algorithm,
		OutlierIndexes:      make([]int, p.N),
		OutlierScores:       make([]float64, p.N),
		VerifiedCount:       state.VerifiedCount(),
		Calculations:        cache.Len(),
		CalculationsCeiling: distcache.Ceiling(size),
		Rounds:              round,
		DataSize:            size,
		Seed:                d.opts.Seed,
		Params:              p,
	}
	for x, i := range rank[:p.N] {
		report.OutlierIndexes[x] = i
		report.OutlierScores[x] = state.Score(i)
	}
	return report, nil
}
