// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic
transformations used when shaping API responses.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
// A nil input yields an empty, non-nil slice so JSON encodes it as [].
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Set collects the keys produced by key into a set, collapsing duplicates.
func Set[T any, K comparable](input []T, key func(T) K) map[K]struct{} {
	set := make(map[K]struct{}, len(input))
	for _, v := range input {
		set[key(v)] = struct{}{}
	}
	return set
}
