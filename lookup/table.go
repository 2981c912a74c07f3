package lookup

import "github.com/kbukum/seqkit/comparer"

// table maps comparer-normalized keys to dense entry indices that follow
// first-insertion order. Removed entries keep their slot and are skipped on
// enumeration.
type table[K any] struct {
	eq      comparer.Equality[K]
	buckets map[uint64][]int
	keys    []K
	removed []bool
	live    int
}

func newTable[K any](eq comparer.Equality[K]) *table[K] {
	return &table[K]{
		eq:      eq,
		buckets: make(map[uint64][]int),
	}
}

// find returns the entry index of key, or -1.
func (t *table[K]) find(key K) int {
	for _, idx := range t.buckets[t.eq.Hash(key)] {
		if t.eq.Equal(t.keys[idx], key) {
			return idx
		}
	}
	return -1
}

// insert returns the entry index of key, adding an entry when the key is new.
func (t *table[K]) insert(key K) (idx int, added bool) {
	h := t.eq.Hash(key)
	for _, i := range t.buckets[h] {
		if t.eq.Equal(t.keys[i], key) {
			return i, false
		}
	}
	idx = len(t.keys)
	t.keys = append(t.keys, key)
	t.removed = append(t.removed, false)
	t.buckets[h] = append(t.buckets[h], idx)
	t.live++
	return idx, true
}

// remove drops key from the table and reports whether it was present.
func (t *table[K]) remove(key K) bool {
	h := t.eq.Hash(key)
	bucket := t.buckets[h]
	for pos, i := range bucket {
		if !t.eq.Equal(t.keys[i], key) {
			continue
		}
		bucket = append(bucket[:pos], bucket[pos+1:]...)
		if len(bucket) == 0 {
			delete(t.buckets, h)
		} else {
			t.buckets[h] = bucket
		}
		t.removed[i] = true
		var zero K
		t.keys[i] = zero
		t.live--
		return true
	}
	return false
}

// each calls fn for every live entry in insertion order until fn returns false.
func (t *table[K]) each(fn func(idx int, key K) bool) {
	for i, key := range t.keys {
		if t.removed[i] {
			continue
		}
		if !fn(i, key) {
			return
		}
	}
}
