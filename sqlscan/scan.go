package sqlscan

import (
	"context"

	"github.com/viant/outlier/dataset"
	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/detect/dhca"
)

// scanTable loads the items table and ranks its top-n outliers.
func (t *Table) scanTable(ctx context.Context, table string) ([]row, error) {
	store, err := dataset.OpenStore(t.db, table)
	if err != nil {
		return nil, err
	}
	if t.scan.metric.IsText() {
		ds, err := store.LoadTexts(ctx)
		if err != nil {
			return nil, err
		}
		fn, err := t.scan.metric.Text()
		if err != nil {
			return nil, err
		}
		return detectRows(ctx, ds, fn, t.scan.params, t.opts)
	}
	ds, err := store.LoadVectors(ctx)
	if err != nil {
		return nil, err
	}
	fn, err := t.scan.metric.Vector()
	if err != nil {
		return nil, err
	}
	return detectRows(ctx, ds, fn, t.scan.params, t.opts)
}

func detectRows[T any](ctx context.Context, ds *dataset.Dataset[T], fn func(a, b T) float64, params detect.Params, opts []detect.Option) ([]row, error) {
	detector, err := dhca.New(ds.Items, fn, params, opts...)
	if err != nil {
		return nil, err
	}
	report, err := detector.Detect(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]row, len(report.OutlierIndexes))
	for x, i := range report.OutlierIndexes {
		rows[x] = row{
			docID: ds.Keys[i],
			label: ds.Labels[i],
			score: report.OutlierScores[x],
			rank:  x + 1,
		}
	}
	return rows, nil
}
