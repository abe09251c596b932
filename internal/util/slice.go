package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Min returns the smallest value of s, 0 if s is empty
func Min[T constraints.Integer | constraints.Float](s []T) T {
	var result T
	for i, v := range s {
		if i == 0 || v < result {
			result = v
		}
	}
	return result
}

// Max returns the largest value of s, 0 if s is empty
func Max[T constraints.Integer | constraints.Float](s []T) T {
	var result T
	for i, v := range s {
		if i == 0 || v > result {
			result = v
		}
	}
	return result
}

func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := make([]T, 0, len(input))
	for k := range input {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}
