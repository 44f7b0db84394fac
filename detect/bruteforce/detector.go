package bruteforce

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/distance"
	"github.com/viant/outlier/internal/distcache"
	"github.com/viant/outlier/internal/knn"
)

// Algorithm is the name reported by this detector.
const Algorithm = "bruteforce"

// Detector computes exact scores from the full pairwise distance matrix.
type Detector[T any] struct {
	data   []T
	metric distance.Func[T]
	params detect.Params
	opts   detect.Options
}

// New validates the parameters against data and returns a detector. Only
// KNN and N are used; K and MaxClusterSize are echoed in the report.
func New[T any](data []T, metric distance.Func[T], params detect.Params, opts ...detect.Option) (*Detector[T], error) {
	if metric == nil {
		return nil, fmt.Errorf("bruteforce: metric is nil")
	}
	if err := params.ValidateBaseline(len(data)); err != nil {
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
	size := len(d.data)
	cache := distcache.New(func(i, j int) float64 { return d.metric(d.data[i], d.data[j]) })
	scores := make([]float64, size)
	err := d.scoreRows(ctx, cache, scores)
	d.opts.Metrics.RecordRun(cache.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	rank := make([]int, size)
	for i := range rank {
		rank[i] = i
	}
	detect.SortByScore(rank, func(i int) float64 { return scores[i] })

	n := d.params.N
	report := &detect.Report{
		Algorithm:           Algorithm,
		OutlierIndexes:      append([]int(nil), rank[:n]...),
		OutlierScores:       make([]float64, n),
		VerifiedCount:       size,
		Calculations:        cache.Len(),
		CalculationsCeiling: distcache.Ceiling(size),
		DataSize:            size,
		Params:              d.params,
	}
	for x, i := range report.OutlierIndexes {
		report.OutlierScores[x] = scores[i]
	}
	report.RunningTimeSeconds = time.Since(start).Seconds()
	d.opts.Logger.InfoContext(ctx, "detection completed",
		"algorithm", Algorithm,
		"size", size,
		"calculations", report.Calculations,
	)
	return report, nil
}

func (d *Detector[T]) scoreRows(ctx context.Context, cache *distcache.Cache, scores []float64) error {
	size := len(scores)
	kNN := d.params.KNN
	row := func(i int, buf []float64) {
		buf = buf[:0]
		for j := 0; j < size; j++ {
			if j != i {
				buf = append(buf, cache.Distance(i, j))
			}
		}
		sort.Float64s(buf)
		scores[i] = knn.Average(buf[:kNN])
	}

	if d.opts.Workers <= 1 {
		buf := make([]float64, 0, size)
		for i := 0; i < size; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			row(i, buf)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i := 0; i < size; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row(i, make([]float64, 0, size))
			return nil
		})
	}
	return g.Wait()
}
