package lookup

import (
	"iter"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
)

// Set is an insertion-ordered set under a comparer.Equality.
type Set[T any] struct {
	t *table[T]
}

// NewSet creates an empty set. A nil eq is not allowed.
func NewSet[T any](eq comparer.Equality[T]) *Set[T] {
	return &Set[T]{t: newTable(eq)}
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	_, added := s.t.insert(v)
	return added
}

// AddUnique inserts v, failing with a duplicate-key error if an equal element is present.
func (s *Set[T]) AddUnique(v T) error {
	if !s.Add(v) {
		return errors.DuplicateKey(v)
	}
	return nil
}

// Contains reports whether an element equal to v is present.
func (s *Set[T]) Contains(v T) bool {
	return s.t.find(v) >= 0
}

// Remove deletes the element equal to v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	return s.t.remove(v)
}

// Len returns the number of elements.
func (s *Set[T]) Len() int { return s.t.live }

// Items returns the elements in insertion order.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, s.t.live)
	s.t.each(func(_ int, key T) bool {
		out = append(out, key)
		return true
	})
	return out
}

// All iterates the elements in insertion order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.t.each(func(_ int, key T) bool { return yield(key) })
	}
}
