package aggregator

import "sort"

// Group is one key of a grouped reduction and its summed value.
type Group[K comparable] struct {
	Key   K
	Value int
}

// groupSum sums value(i) per key(i) over n rows. Groups come back sorted by value
// descending; equal values keep first-encountered order.
func groupSum[K comparable](n int, key func(i int) K, value func(i int) int) []Group[K] {
	pos := make(map[K]int)
	var groups []Group[K]
	for i := 0; i < n; i++ {
		k := key(i)
		j, ok := pos[k]
		if !ok {
			j = len(groups)
			pos[k] = j
			groups = append(groups, Group[K]{Key: k})
		}
		groups[j].Value += value(i)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Value > groups[b].Value
	})
	return groups
}

// nonZero drops groups whose summed value is exactly zero.
func nonZero[K comparable](groups []Group[K]) []Group[K] {
	out := groups[:0:0]
	for _, g := range groups {
		if g.Value != 0 {
			out = append(out, g)
		}
	}
	return out
}
