package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// MaxIndices returns the positions of every element equal to the maximum.
func MaxIndices[T constraints.Ordered](values []T) []int {
	var indices []int
	for i, v := range values {
		switch {
		case len(indices) == 0 || v > values[indices[0]]:
			indices = append(indices[:0], i)
		case v == values[indices[0]]:
			indices = append(indices, i)
		}
	}
	return indices
}
