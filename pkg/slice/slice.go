// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Map, Equal) leveraging generics.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Equal reports whether a and b have equal length and pairwise-equal elements
// in order. Two nil (or empty) slices are equal.
//
// It is used to detect no-op updates on multi-valued fields (developers,
// platforms, genres) so unchanged lists never reach the write set.
func Equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Contains reports whether needle is present in haystack.
func Contains[T comparable](haystack []T, needle T) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
