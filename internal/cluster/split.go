package cluster

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// Splitter runs divisive steps over a State.
type Splitter struct {
	State          *State
	K              int
	MaxClusterSize int
	Rand           *rand.Rand
	// Workers > 1 prefetches distances concurrently; neighbor sets are still
	// updated sequentially in member order.
	Workers int
}

// Refine splits root and, through a LIFO work-list, every resulting child
// group larger than MaxClusterSize that is smaller than its parent. Members
// whose score drops to threshold or below are left out of child groups.
func (s *Splitter) Refine(ctx context.Context, root *Node, threshold float64) (Stats, error) {
	var stats Stats
	pending := []*Node{root}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		node := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		children, err := s.Split(ctx, node, threshold, &stats)
		if err != nil {
			return stats, err
		}
		for _, child := range children {
			// A child as large as its parent would be split the same way forever.
			if len(child.Members) > s.MaxClusterSize && len(child.Members) < len(node.Members) {
				pending = append(pending, child)
				continue
			}
			stats.Leaves++
		}
	}
	return stats, nil
}

// Split performs one divisive step over node and returns its child groups,
// one per centroid, each starting with its centroid.
func (s *Splitter) Split(ctx context.Context, node *Node, threshold float64, stats *Stats) ([]*Node, error) {
	centroids := node.Centroids
	if len(centroids) == 0 {
		centroids = s.sample(node.Members)
	}
	if len(centroids) == 0 {
		return nil, nil
	}
	stats.Splits++

	children := make([]*Node, len(centroids))
	slot := make(map[int]int, len(centroids))
	for x, c := range centroids {
		children[x] = &Node{Members: []int{c}}
		slot[c] = x
	}
	others := make([]int, 0, len(node.Members))
	for _, m := range node.Members {
		if _, ok := slot[m]; !ok {
			others = append(others, m)
		}
	}

	nearest, err := s.nearest(ctx, others, centroids)
	if err != nil {
		return nil, err
	}
	for x, i := range others {
		j := nearest[x]
		s.State.Tighten(i, j)
		if s.State.Score(i) > threshold {
			child := children[slot[j]]
			child.Members = append(child.Members, i)
			continue
		}
		stats.Pruned++
	}

	if node.VerifyCenters {
		verified, err := s.verify(ctx, node.Members, centroids)
		stats.Verified += verified
		if err != nil {
			return nil, err
		}
	}
	return children, nil
}

// sample picks min(K, len(members)-1) distinct members uniformly at random.
func (s *Splitter) sample(members []int) []int {
	count := min(s.K, len(members)-1)
	if count < 1 {
		return nil
	}
	pool := append([]int(nil), members...)
	for x := 0; x < count; x++ {
		y := x + s.Rand.IntN(len(pool)-x)
		pool[x], pool[y] = pool[y], pool[x]
	}
	return pool[:count]
}

// nearest returns, for every item, the closest centroid; the first centroid
// wins ties.
func (s *Splitter) nearest(ctx context.Context, items, centroids []int) ([]int, error) {
	out := make([]int, len(items))
	cache := s.State.Cache
	err := s.forEach(ctx, len(items), func(x int) {
		i := items[x]
		best, bestDist := centroids[0], cache.Distance(i, centroids[0])
		for _, c := range centroids[1:] {
			if d := cache.Distance(i, c); d < bestDist {
				best, bestDist = c, d
			}
		}
		out[x] = best
	})
	return out, err
}

// forEach calls fn for 0..n-1, fanning out across Workers goroutines.
func (s *Splitter) forEach(ctx context.Context, n int, fn func(x int)) error {
	if s.Workers <= 1 || n < 2 {
		for x := 0; x < n; x++ {
			fn(x)
		}
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	chunk := (n + s.Workers - 1) / s.Workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for x := start; x < end; x++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(x)
			}
			return nil
		})
	}
	return g.Wait()
}
