// Package util provides small generic slice/map helpers shared by the
// optimiser packages.
package util

// FilterSlice returns a new slice containing only elements that satisfy the predicate.
// This consolidates duplicate filtering patterns across the codebase.
func FilterSlice[T any](slice []T, predicate func(T) bool) []T {
	var filtered []T
	for _, item := range slice {
		if predicate(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Keys returns the keys of a map in unspecified order.
func Keys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GroupBy partitions a slice into buckets keyed by keyFn.
func GroupBy[T any, K comparable](items []T, keyFn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := keyFn(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// Sum adds up an integer projection of a slice.
func Sum[T any](items []T, valueFn func(T) int) int {
	total := 0
	for _, item := range items {
		total += valueFn(item)
	}
	return total
}
