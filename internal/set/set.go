// Package set provides a generic set datastructure.
package set

// Set is an unordered collection of unique elements.
type Set[T comparable] map[T]struct{}

// From returns a set containing the elements of slice.
func From[T comparable](slice []T) Set[T] {
	set := make(Set[T], len(slice))

	for _, v := range slice {
		set[v] = struct{}{}
	}

	return set
}

// Add adds val to the set.
func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

// Contains returns true if v is an element of the set.
func (s Set[T]) Contains(v T) bool {
	_, exists := s[v]
	return exists
}

// ContainsAny returns true if one of vals is an element of the set.
func (s Set[T]) ContainsAny(vals []T) bool {
	for _, v := range vals {
		if s.Contains(v) {
			return true
		}
	}

	return false
}
