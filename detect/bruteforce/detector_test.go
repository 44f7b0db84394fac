package bruteforce

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/distance"
)

func TestDetector_Detect(t *testing.T) {
	var testCases = []struct {
		description string
		points      []float64
		params      detect.Params
		indexes     []int
		scores      []float64
	}{
		{
			description: "single far item",
			points:      []float64{0, 0, 0, 0, 0, 100},
			params:      detect.Params{KNN: 2, N: 1},
			indexes:     []int{5},
			scores:      []float64{100},
		},
		{
			description: "ties ordered by index",
			points:      []float64{0, 1, 2, 10, 11, 12},
			params:      detect.Params{KNN: 2, N: 4},
			indexes:     []int{0, 2, 3, 5},
			scores:      []float64{1.5, 1.5, 1.5, 1.5},
		},
		{
			description: "every item reported",
			points:      []float64{0, 1, 3},
			params:      detect.Params{KNN: 1, N: 3},
			indexes:     []int{2, 0, 1},
			scores:      []float64{2, 1, 1},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			detector, err := New(testCase.points, distance.Abs, testCase.params)
			require.NoError(t, err)
			report, err := detector.Detect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Algorithm, report.Algorithm)
			assert.Equal(t, testCase.indexes, report.OutlierIndexes)
			assert.Equal(t, testCase.scores, report.OutlierScores)
			size := len(testCase.points)
			assert.Equal(t, size, report.VerifiedCount)
			assert.Equal(t, size*(size-1)/2, report.Calculations)
			assert.Equal(t, report.Calculations, report.CalculationsCeiling)
			assert.Equal(t, testCase.params, report.Params)
		})
	}
}

func TestDetector_ParallelMatchesSequential(t *testing.T) {
	points := make([]float64, 40)
	for i := range points {
		points[i] = float64((i * 37) % 101)
	}
	params := detect.Params{KNN: 3, N: 5}

	sequential, err := New(points, distance.Abs, params)
	require.NoError(t, err)
	want, err := sequential.Detect(context.Background())
	require.NoError(t, err)

	parallel, err := New(points, distance.Abs, params, detect.WithWorkers(4))
	require.NoError(t, err)
	got, err := parallel.Detect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, want.OutlierIndexes, got.OutlierIndexes)
	assert.Equal(t, want.OutlierScores, got.OutlierScores)
	assert.Equal(t, want.Calculations, got.Calculations)
}

func TestNew_InvalidParams(t *testing.T) {
	calls := 0
	metric := func(a, b float64) float64 {
		calls++
		return a - b
	}
	points := []float64{1, 2, 3}
	for _, params := range []detect.Params{
		{KNN: 3, N: 1},
		{KNN: 0, N: 1},
		{KNN: 1, N: 4},
		{KNN: 1, N: 0},
	} {
		_, err := New(points, metric, params)
		assert.True(t, errors.Is(err, detect.ErrInvalidConfig), "params %+v", params)
	}
	assert.Zero(t, calls)
}

func TestDetector_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 4} {
		detector, err := New([]float64{1, 2, 3, 4}, distance.Abs, detect.Params{KNN: 1, N: 1}, detect.WithWorkers(workers))
		require.NoError(t, err)
		_, err = detector.Detect(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	}
}
