package knn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	testCases := []struct {
		description string
		owner       int
		seed        []Neighbor
		wantErr     bool
	}{
		{description: "valid", owner: 0, seed: []Neighbor{{1, 3}, {2, 1}, {3, 2}}},
		{description: "empty seed", owner: 0, wantErr: true},
		{description: "owner in seed", owner: 1, seed: []Neighbor{{1, 3}, {2, 1}}, wantErr: true},
		{description: "duplicate index", owner: 0, seed: []Neighbor{{1, 3}, {1, 1}}, wantErr: true},
		{description: "negative distance", owner: 0, seed: []Neighbor{{1, -1}}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			set, err := NewSet(tc.owner, tc.seed)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tc.seed), set.Len())
			assert.Equal(t, tc.owner, set.Owner())
		})
	}
}

func TestSet_MaxAndScore(t *testing.T) {
	set, err := NewSet(0, []Neighbor{{1, 3}, {2, 1}, {3, 2}})
	require.NoError(t, err)

	assert.Equal(t, 3.0, set.Max())
	assert.Equal(t, 2.0, set.Score())
	assert.True(t, set.Contains(2))
	assert.False(t, set.Contains(4))
	assert.False(t, set.Contains(0))
}

func TestSet_ReplaceEvictsWorst(t *testing.T) {
	set, err := NewSet(0, []Neighbor{{1, 3}, {2, 1}, {3, 2}})
	require.NoError(t, err)
	require.Equal(t, 2.0, set.Score())

	set.Replace(4, 0.5)

	assert.False(t, set.Contains(1))
	assert.True(t, set.Contains(4))
	assert.Equal(t, 2.0, set.Max())
	assert.InDelta(t, 3.5/3, set.Score(), 1e-12)
	assert.Equal(t, []Neighbor{{4, 0.5}, {2, 1}, {3, 2}}, set.Neighbors())
}

func TestSet_ReplaceDuplicatePanics(t *testing.T) {
	set, err := NewSet(0, []Neighbor{{1, 3}, {2, 1}})
	require.NoError(t, err)
	assert.Panics(t, func() { set.Replace(2, 0.1) })
	assert.Panics(t, func() { set.Replace(0, 0.1) })
}

func TestSet_Offer(t *testing.T) {
	set, err := NewSet(0, []Neighbor{{1, 3}, {2, 1}})
	require.NoError(t, err)

	assert.False(t, set.Offer(2, 0.1), "held neighbor must not be inserted twice")
	assert.False(t, set.Offer(5, 3), "equal distance does not tighten")
	assert.False(t, set.Offer(6, 4))
	assert.False(t, set.Offer(0, 0), "owner is never its own neighbor")
	assert.Equal(t, 2.0, set.Score())

	assert.True(t, set.Offer(7, 2))
	assert.Equal(t, 1.5, set.Score())
	assert.Equal(t, 2.0, set.Max())
}

func TestSet_ScoreNeverIncreases(t *testing.T) {
	set, err := NewSet(0, []Neighbor{{1, 9}, {2, 8}, {3, 7}})
	require.NoError(t, err)
	prev := set.Score()
	for i, d := range []float64{10, 6, 8.5, 1, 7, 0.5, 2} {
		set.Offer(i+4, d)
		score := set.Score()
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestAverage(t *testing.T) {
	assert.Zero(t, Average(nil))
	assert.Equal(t, 2.0, Average([]float64{1, 2, 3}))
}
