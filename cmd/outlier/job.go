package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/outlier/config"
	"github.com/viant/outlier/dataset"
	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/detect/bruteforce"
	"github.com/viant/outlier/detect/dhca"
	"github.com/viant/outlier/distance"
	"github.com/viant/outlier/engine"
)

// job is a loaded dataset bound to its metric.
type job struct {
	name   string
	size   int
	labels []string
	build  func(algorithm string, opts ...detect.Option) (detect.Detector, error)
}

func newJob[T any](ds *dataset.Dataset[T], fn distance.Func[T], params detect.Params) *job {
	return &job{
		name:   ds.Name,
		size:   ds.Len(),
		labels: ds.Labels,
		build: func(algorithm string, opts ...detect.Option) (detect.Detector, error) {
			switch algorithm {
			case dhca.Algorithm:
				return dhca.New(ds.Items, fn, params, opts...)
			case bruteforce.Algorithm:
				return bruteforce.New(ds.Items, fn, params, opts...)
			}
			return nil, fmt.Errorf("unknown algorithm %q", algorithm)
		},
	}
}

// run builds and runs one detector and labels its report.
func (j *job) run(ctx context.Context, algorithm string, opts ...detect.Option) (*detect.Report, error) {
	detector, err := j.build(algorithm, opts...)
	if err != nil {
		return nil, err
	}
	report, err := detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", algorithm, j.name, err)
	}
	return report.WithLabels(j.labels), nil
}

func loadJob(ctx context.Context, cfg *config.Config) (*job, error) {
	format, err := dataset.ParseFormat(cfg.Dataset.Format)
	if err != nil {
		return nil, err
	}
	metric, err := distance.ParseMetric(cfg.Dataset.Metric)
	if err != nil {
		return nil, err
	}
	if format == dataset.FormatSQLite {
		return loadSQLiteJob(ctx, cfg, metric)
	}

	f, err := os.Open(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if format.IsText() {
		ds, err := readTexts(format, f)
		if err != nil {
			return nil, err
		}
		return textJob(ds, metric, cfg.Params)
	}
	ds, err := readVectors(format, f)
	if err != nil {
		return nil, err
	}
	return vectorJob(ds, metric, cfg.Params)
}

func loadSQLiteJob(ctx context.Context, cfg *config.Config, metric distance.Metric) (*job, error) {
	db, err := engine.OpenContext(ctx, cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	store, err := dataset.OpenStore(db, cfg.Dataset.Table)
	if err != nil {
		return nil, err
	}
	if metric.IsText() {
		ds, err := store.LoadTexts(ctx)
		if err != nil {
			return nil, err
		}
		return textJob(ds, metric, cfg.Params)
	}
	ds, err := store.LoadVectors(ctx)
	if err != nil {
		return nil, err
	}
	return vectorJob(ds, metric, cfg.Params)
}

func readVectors(format dataset.Format, r io.Reader) (*dataset.Dataset[[]float32], error) {
	switch format {
	case dataset.FormatWeightHeight:
		return dataset.ReadWeightHeight(r)
	case dataset.FormatMoments:
		return dataset.ReadMoments(r)
	}
	return nil, fmt.Errorf("format %s does not contain vectors", format)
}

func readTexts(format dataset.Format, r io.Reader) (*dataset.Dataset[string], error) {
	if format == dataset.FormatFASTA {
		return dataset.ReadFASTA(r)
	}
	return nil, fmt.Errorf("format %s does not contain text", format)
}

func vectorJob(ds *dataset.Dataset[[]float32], metric distance.Metric, params detect.Params) (*job, error) {
	fn, err := metric.Vector()
	if err != nil {
		return nil, err
	}
	return newJob(ds, fn, params), nil
}

func textJob(ds *dataset.Dataset[string], metric distance.Metric, params detect.Params) (*job, error) {
	fn, err := metric.Text()
	if err != nil {
		return nil, err
	}
	return newJob(ds, fn, params), nil
}
