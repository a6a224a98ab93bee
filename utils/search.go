package utils

import (
	"slices"
	"sort"
)

// SortByKey sorts items in place, ascending by key. The sort is stable, so sorted
// input comes back unchanged.
func SortByKey[T any](items []T, key func(T) float64) {
	slices.SortStableFunc(items, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
}

// ClosestIndex returns the rightmost index i such that keys[i] <= value. keys must be
// sorted ascending. It returns 0 when keys is empty or every key exceeds value.
func ClosestIndex(keys []float64, value float64) int {
	// first index whose key is strictly greater than value
	above := sort.Search(len(keys), func(i int) bool { return keys[i] > value })
	if above == 0 {
		return 0
	}
	return above - 1
}

// NearestIndex returns the index of the key closest to value. keys must be sorted ascending;
// ties resolve to the lower index. It returns 0 for empty input.
func NearestIndex(keys []float64, value float64) int {
	if len(keys) == 0 {
		return 0
	}
	lo := ClosestIndex(keys, value)
	hi := lo + 1
	if hi >= len(keys) || keys[lo] > value {
		return lo
	}
	if keys[hi]-value < value-keys[lo] {
		return hi
	}
	return lo
}
