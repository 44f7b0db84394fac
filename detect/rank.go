package detect

import "slices"

// SortByScore orders item indexes by descending score. Equal scores order by
// ascending index, so rankings are deterministic.
func SortByScore(indexes []int, score func(i int) float64) {
	slices.SortStableFunc(indexes, func(a, b int) int {
		sa, sb := score(a), score(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return a - b
	})
}
