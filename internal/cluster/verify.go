package cluster

import "context"

// verify compares every unverified centroid against all other members,
// which makes its neighbor set (and score) exact, then flags it. Flags are
// never cleared.
func (s *Splitter) verify(ctx context.Context, members, centroids []int) (int, error) {
	verified := 0
	for _, c := range centroids {
		if s.State.Verified[c] {
			continue
		}
		if s.Workers > 1 {
			err := s.forEach(ctx, len(members), func(x int) {
				s.State.Cache.Distance(c, members[x])
			})
			if err != nil {
				return verified, err
			}
		}
		for _, m := range members {
			if m != c {
				s.State.Tighten(c, m)
			}
		}
		s.State.Verified[c] = true
		verified++
	}
	return verified, nil
}
