package knn

// Neighbor describes a candidate neighbor of an item.
type Neighbor struct {
	Index    int
	Distance float64
}

// neighbors implements heap.Interface sorted by descending distance (max-heap),
// so the worst candidate sits at the root. Equal distances order by index to
// keep the layout deterministic.
type neighbors []Neighbor

func (h neighbors) Len() int { return len(h) }
func (h neighbors) Less(i, j int) bool {
	if h[i].Distance != h[j].Distance {
		return h[i].Distance > h[j].Distance
	}
	return h[i].Index > h[j].Index
}
func (h neighbors) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *neighbors) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *neighbors) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
