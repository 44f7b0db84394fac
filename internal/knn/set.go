package knn

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Set holds exactly k candidate neighbors of one item. It is not safe for
// concurrent use.
type Set struct {
	owner   int
	heap    neighbors
	score   float64
	fresh   bool
	scratch []float64
}

// NewSet builds a neighbor set for owner from an initial pool of distinct
// candidates; the pool size fixes k for the lifetime of the set.
func NewSet(owner int, seed []Neighbor) (*Set, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("knn: empty neighbor seed for item %d", owner)
	}
	seen := make(map[int]struct{}, len(seed))
	for _, n := range seed {
		if n.Index == owner {
			return nil, fmt.Errorf("knn: item %d cannot be its own neighbor", owner)
		}
		if n.Distance < 0 || math.IsNaN(n.Distance) {
			return nil, fmt.Errorf("knn: invalid distance %v from item %d to %d", n.Distance, owner, n.Index)
		}
		if _, ok := seen[n.Index]; ok {
			return nil, fmt.Errorf("knn: duplicate neighbor %d for item %d", n.Index, owner)
		}
		seen[n.Index] = struct{}{}
	}
	h := append(neighbors(nil), seed...)
	heap.Init(&h)
	return &Set{
		owner:   owner,
		heap:    h,
		scratch: make([]float64, len(h)),
	}, nil
}

// Owner returns the item the set belongs to.
func (s *Set) Owner() int { return s.owner }

// Len returns k.
func (s *Set) Len() int { return len(s.heap) }

// Max returns the distance to the current worst of the k neighbors.
func (s *Set) Max() float64 { return s.heap[0].Distance }

// Contains reports whether index is one of the held neighbors.
func (s *Set) Contains(index int) bool {
	for _, n := range s.heap {
		if n.Index == index {
			return true
		}
	}
	return false
}

// Replace evicts the worst neighbor and inserts (index, distance). Inserting
// an index that is already held, or the owner itself, is a programming error.
func (s *Set) Replace(index int, distance float64) {
	if index == s.owner || s.Contains(index) {
		panic(fmt.Sprintf("knn: item %d already holds neighbor %d", s.owner, index))
	}
	s.heap[0] = Neighbor{Index: index, Distance: distance}
	heap.Fix(&s.heap, 0)
	s.fresh = false
}

// Offer replaces the worst neighbor when index is new and strictly closer.
// It reports whether the set changed.
func (s *Set) Offer(index int, distance float64) bool {
	if index == s.owner || distance >= s.Max() || s.Contains(index) {
		return false
	}
	s.heap[0] = Neighbor{Index: index, Distance: distance}
	heap.Fix(&s.heap, 0)
	s.fresh = false
	return true
}

// Score returns the mean distance to the held neighbors; it is recomputed
// only after the set changes.
func (s *Set) Score() float64 {
	if !s.fresh {
		for i, n := range s.heap {
			s.scratch[i] = n.Distance
		}
		sort.Float64s(s.scratch)
		s.score = Average(s.scratch)
		s.fresh = true
	}
	return s.score
}

// Neighbors returns the held neighbors sorted by ascending distance.
func (s *Set) Neighbors() []Neighbor {
	out := append([]Neighbor(nil), s.heap...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Average returns the arithmetic mean of distances. Callers pass distances in
// ascending order so that equal multisets yield bit-identical results.
func Average(distances []float64) float64 {
	if len(distances) == 0 {
		return 0
	}
	return stat.Mean(distances, nil)
}
