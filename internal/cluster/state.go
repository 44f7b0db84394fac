package cluster

import (
	"fmt"

	"github.com/viant/outlier/internal/distcache"
	"github.com/viant/outlier/internal/knn"
)

// State is the mutable state of one detection run. It is owned by a single
// run and never shared across runs.
type State struct {
	Cache    *distcache.Cache
	Sets     []*knn.Set
	Verified []bool
}

// NewState seeds every item's neighbor set with the next kNN items in index
// order, wrapping around. The seed only needs to be valid, not close.
func NewState(cache *distcache.Cache, size, kNN int) (*State, error) {
	if kNN < 1 || kNN >= size {
		return nil, fmt.Errorf("cluster: cannot seed %d neighbors among %d items", kNN, size)
	}
	s := &State{
		Cache:    cache,
		Sets:     make([]*knn.Set, size),
		Verified: make([]bool, size),
	}
	seed := make([]knn.Neighbor, kNN)
	for i := 0; i < size; i++ {
		for j := 0; j < kNN; j++ {
			idx := (i + j + 1) % size
			seed[j] = knn.Neighbor{Index: idx, Distance: cache.Distance(i, idx)}
		}
		set, err := knn.NewSet(i, seed)
		if err != nil {
			return nil, fmt.Errorf("cluster: failed to seed item %d: %w", i, err)
		}
		s.Sets[i] = set
	}
	return s, nil
}

// Size returns the number of items.
func (s *State) Size() int { return len(s.Sets) }

// Score returns the current score of item i.
func (s *State) Score(i int) float64 { return s.Sets[i].Score() }

// Tighten evaluates d(i, j) once and offers it to both neighbor sets. It
// reports whether either set changed.
func (s *State) Tighten(i, j int) bool {
	d := s.Cache.Distance(i, j)
	a := s.Sets[i].Offer(j, d)
	b := s.Sets[j].Offer(i, d)
	return a || b
}

// VerifiedCount returns the number of items whose score is exact.
func (s *State) VerifiedCount() int {
	count := 0
	for _, v := range s.Verified {
		if v {
			count++
		}
	}
	return count
}
