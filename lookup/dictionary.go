package lookup

import (
	"iter"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
)

// Dictionary maps each key to exactly one value under a comparer.Equality.
// Iteration follows key insertion order.
type Dictionary[K, V any] struct {
	t      *table[K]
	values []V
}

// NewDictionary creates an empty dictionary.
func NewDictionary[K, V any](eq comparer.Equality[K]) *Dictionary[K, V] {
	return &Dictionary[K, V]{t: newTable(eq)}
}

// Add inserts key with value, failing with a duplicate-key error when an
// equal key is already present. The existing value is left untouched.
func (d *Dictionary[K, V]) Add(key K, value V) error {
	if _, added := d.t.insert(key); !added {
		return errors.DuplicateKey(key)
	}
	d.values = append(d.values, value)
	return nil
}

// Set inserts or overwrites the value for key.
func (d *Dictionary[K, V]) Set(key K, value V) {
	idx, added := d.t.insert(key)
	if added {
		d.values = append(d.values, value)
		return
	}
	d.values[idx] = value
}

// Get returns the value for key and whether it was present.
func (d *Dictionary[K, V]) Get(key K) (V, bool) {
	idx := d.t.find(key)
	if idx < 0 {
		var zero V
		return zero, false
	}
	return d.values[idx], true
}

// ContainsKey reports whether key is present.
func (d *Dictionary[K, V]) ContainsKey(key K) bool {
	return d.t.find(key) >= 0
}

// Len returns the number of entries.
func (d *Dictionary[K, V]) Len() int { return d.t.live }

// Keys returns the keys in insertion order.
func (d *Dictionary[K, V]) Keys() []K {
	out := make([]K, 0, d.t.live)
	d.t.each(func(_ int, key K) bool {
		out = append(out, key)
		return true
	})
	return out
}

// All iterates key-value pairs in insertion order.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		d.t.each(func(idx int, key K) bool { return yield(key, d.values[idx]) })
	}
}
