package utils

import "cmp"

// FindIndex returns the index of the first occurrence of item, or -1
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMaxAll returns every index attaining the maximum value, in order.
// Returns nil for an empty slice.
func ArgMaxAll[T cmp.Ordered](values []T) []int {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	indices := []int{0}
	for i, v := range values[1:] {
		switch {
		case v > best:
			best = v
			indices = []int{i + 1}
		case v == best:
			indices = append(indices, i+1)
		}
	}
	return indices
}
