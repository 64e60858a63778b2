// Package set provides a small generic set collection.
package set

import "sort"

// Set represents a collection of unique elements.
type Set[T comparable] struct {
	items map[T]struct{}
}

// New creates and returns a new empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{
		items: make(map[T]struct{}),
	}
}

// FromSlice creates a new Set from the provided slice of items.
// Duplicates in the slice are only represented once.
func FromSlice[T comparable](items []T) *Set[T] {
	set := New[T]()
	for _, item := range items {
		set.Add(item)
	}
	return set
}

// Add inserts an item into the set.
func (s *Set[T]) Add(item T) {
	s.items[item] = struct{}{}
}

// Has reports whether the item is in the set.
func (s *Set[T]) Has(item T) bool {
	_, ok := s.items[item]
	return ok
}

// Remove deletes an item from the set if present.
func (s *Set[T]) Remove(item T) {
	delete(s.items, item)
}

// Len returns the number of items in the set.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Values returns all items in the set in unspecified order.
func (s *Set[T]) Values() []T {
	values := make([]T, 0, len(s.items))
	for item := range s.items {
		values = append(values, item)
	}
	return values
}

// SortedStrings returns the items of a string set in ascending order.
func SortedStrings(s *Set[string]) []string {
	values := s.Values()
	sort.Strings(values)
	return values
}
