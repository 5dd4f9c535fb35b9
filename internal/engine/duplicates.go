// Package engine holds the scanning helpers behind keyboard validation and
// strict document decoding. Nothing here is part of the public API.
package engine

// Duplicate records a value seen more than once in a flat sequence.
type Duplicate struct {
	First int // index of the earliest equal element
	Index int // index of the repeated element
}

// FindDuplicates returns, in ascending Index order, every element of v that
// equals an earlier element. Equality is Go's ==, so NaN never repeats and
// +0 equals -0.
func FindDuplicates[T comparable](v []T) []Duplicate {
	var out []Duplicate
	seen := make(map[T]int, len(v))
	for i, x := range v {
		if first, ok := seen[x]; ok {
			out = append(out, Duplicate{First: first, Index: i})
			continue
		}
		seen[x] = i
	}
	return out
}

// ContainsDuplicates reports whether any two elements of v are equal.
func ContainsDuplicates[T comparable](v []T) bool {
	seen := make(map[T]struct{}, len(v))
	for _, x := range v {
		if _, ok := seen[x]; ok {
			return true
		}
		seen[x] = struct{}{}
	}
	return false
}

// ContainsDuplicatesQuadratic is the reference scan: an element is a
// duplicate when the last index holding an equal value is not its own.
// Elements equal to nothing (NaN) are skipped. Used to cross-check the
// hashed scan in tests and fuzzing.
func ContainsDuplicatesQuadratic[T comparable](v []T) bool {
	for i, x := range v {
		last := -1
		for j := len(v) - 1; j >= 0; j-- {
			if v[j] == x {
				last = j
				break
			}
		}
		if last >= 0 && last != i {
			return true
		}
	}
	return false
}
