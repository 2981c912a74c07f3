package lookup

import (
	"iter"
	"slices"

	"github.com/kbukum/seqkit/comparer"
)

// Grouping is a key together with the elements mapped to it, in encounter order.
type Grouping[K, V any] struct {
	Key    K
	Values []V
}

// Lookup is an immutable multi-map from keys to ordered groups of values.
// Keys enumerate in first-insertion order; indexing an absent key yields an
// empty group.
type Lookup[K, V any] struct {
	t      *table[K]
	groups [][]V
}

// Builder accumulates key-value pairs for a Lookup.
type Builder[K, V any] struct {
	l *Lookup[K, V]
}

// NewBuilder creates a builder whose keys are compared with eq.
func NewBuilder[K, V any](eq comparer.Equality[K]) *Builder[K, V] {
	return &Builder[K, V]{l: &Lookup[K, V]{t: newTable(eq)}}
}

// Add appends value to the group of key, creating the group when key is new.
func (b *Builder[K, V]) Add(key K, value V) {
	idx, added := b.l.t.insert(key)
	if added {
		b.l.groups = append(b.l.groups, nil)
	}
	b.l.groups[idx] = append(b.l.groups[idx], value)
}

// AddKey registers key with an empty group if it is not present yet.
func (b *Builder[K, V]) AddKey(key K) {
	if _, added := b.l.t.insert(key); added {
		b.l.groups = append(b.l.groups, nil)
	}
}

// Len returns the number of distinct keys added so far.
func (b *Builder[K, V]) Len() int { return b.l.t.live }

// Lookup finishes the build. The builder must not be used afterwards.
func (b *Builder[K, V]) Lookup() *Lookup[K, V] {
	l := b.l
	b.l = nil
	for i, g := range l.groups {
		l.groups[i] = slices.Clip(g)
	}
	return l
}

// Get returns the group for key, or an empty slice when key is absent.
// The returned slice must not be modified.
func (l *Lookup[K, V]) Get(key K) []V {
	idx := l.t.find(key)
	if idx < 0 {
		return []V{}
	}
	return l.groups[idx]
}

// Contains reports whether key has a group.
func (l *Lookup[K, V]) Contains(key K) bool {
	return l.t.find(key) >= 0
}

// Len returns the number of distinct keys.
func (l *Lookup[K, V]) Len() int { return l.t.live }

// Keys returns the keys in first-insertion order.
func (l *Lookup[K, V]) Keys() []K {
	out := make([]K, 0, l.t.live)
	l.t.each(func(_ int, key K) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Groupings returns every grouping in first-insertion order.
func (l *Lookup[K, V]) Groupings() []Grouping[K, V] {
	out := make([]Grouping[K, V], 0, l.t.live)
	l.t.each(func(idx int, key K) bool {
		out = append(out, Grouping[K, V]{Key: key, Values: l.groups[idx]})
		return true
	})
	return out
}

// All iterates the groupings in first-insertion order.
func (l *Lookup[K, V]) All() iter.Seq[Grouping[K, V]] {
	return func(yield func(Grouping[K, V]) bool) {
		l.t.each(func(idx int, key K) bool {
			return yield(Grouping[K, V]{Key: key, Values: l.groups[idx]})
		})
	}
}
