package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/engine"
)

func sampleReport(algorithm string) *detect.Report {
	return &detect.Report{
		Algorithm:           algorithm,
		OutlierIndexes:      []int{5, 2},
		OutlierScores:       []float64{100, 1.5},
		OutlierLabels:       []string{"far", "near"},
		VerifiedCount:       3,
		Calculations:        13,
		CalculationsCeiling: 15,
		Rounds:              1,
		RunningTimeSeconds:  0.25,
		DataSize:            6,
		Seed:                7,
		Params:              detect.Params{KNN: 2, K: 1, N: 2, MaxClusterSize: 2},
	}
}

func TestWrite_OneLinePerReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport("dhca")))
	require.NoError(t, Write(&buf, sampleReport("bruteforce")))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `"algorithm":"dhca"`)
	assert.Contains(t, string(lines[0]), `"calculationsCeiling":15`)
	assert.Contains(t, string(lines[0]), `"kNN":2`)

	reports, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, sampleReport("bruteforce"), reports[1])
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "runs.jsonl")
	require.NoError(t, AppendFile(path, sampleReport("dhca")))
	require.NoError(t, AppendFile(path, sampleReport("dhca")))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	reports, err := ReadAll(f)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestReadAll_Corrupt(t *testing.T) {
	_, err := ReadAll(bytes.NewBufferString("{\"algorithm\":\"dhca\"}\n{broken\n"))
	assert.Error(t, err)
}

func TestStore_SaveAndRuns(t *testing.T) {
	ctx := context.Background()
	db, err := engine.Open(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	store, err := NewStore(ctx, db, "")
	require.NoError(t, err)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := store.Save(ctx, "weights", sampleReport("dhca"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "weights", sampleReport("bruteforce"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "genes", sampleReport("dhca"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := store.Runs(ctx, "weights")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
	assert.Equal(t, "bruteforce", runs[1].Report.Algorithm)
	assert.Equal(t, sampleReport("dhca"), runs[0].Report)
	assert.True(t, runs[0].CreatedAt.Before(runs[1].CreatedAt))

	_, err = NewStore(ctx, db, "runs-table")
	assert.Error(t, err)
}
