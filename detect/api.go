package detect

import "context"

// Detector ranks the n most anomalous items of a dataset by their average
// distance to their kNN nearest neighbors.
type Detector interface {
	// Detect runs to completion and returns the top-n report. A failed run
	// returns no partial report.
	Detect(ctx context.Context) (*Report, error)
}
