package dhca

import (
	"github.com/viant/outlier/detect"
	"github.com/viant/outlier/internal/cluster"
)

// ranking is a permutation of item indexes ordered by descending score; equal
// scores order by ascending index.
type ranking []int

func newRanking(size int) ranking {
	r := make(ranking, size)
	for i := range r {
		r[i] = i
	}
	return r
}

func (r ranking) sort(state *cluster.State) {
	detect.SortByScore(r, state.Score)
}

// topVerified reports whether the first n ranked items are all verified.
func (r ranking) topVerified(state *cluster.State, n int) bool {
	for _, i := range r[:n] {
		if !state.Verified[i] {
			return false
		}
	}
	return true
}

// topUnverified returns up to k unverified items in rank order.
func (r ranking) topUnverified(state *cluster.State, k int) []int {
	out := make([]int, 0, k)
	for _, i := range r {
		if state.Verified[i] {
			continue
		}
		out = append(out, i)
		if len(out) == k {
			break
		}
	}
	return out
}
