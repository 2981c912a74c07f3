package seq

import (
	"context"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/lookup"
)

// ToMap reads s in full into a Go map. Two values with the same key fail
// with a duplicate-key error; nothing is overwritten.
func ToMap[T any, K comparable, V any](ctx context.Context, s *Seq[T], key func(T) K, val func(T) V) (map[K]V, error) {
	if key == nil {
		return nil, errors.MissingArgument("keySelector")
	}
	if val == nil {
		return nil, errors.MissingArgument("elementSelector")
	}
	it := s.create(ctx)
	defer it.Close()
	b := newBudget(ctx, "ToMap")
	m := make(map[K]V)
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		k := key(v)
		if _, dup := m[k]; dup {
			return nil, errors.DuplicateKey(k)
		}
		if err := b.grow(); err != nil {
			return nil, err
		}
		m[k] = val(v)
	}
	b.done()
	return m, nil
}

// ToDictionary reads s in full into a Dictionary that keeps insertion order.
// Two values with the same key fail with a duplicate-key error.
func ToDictionary[T any, K comparable, V any](ctx context.Context, s *Seq[T], key func(T) K, val func(T) V) (*lookup.Dictionary[K, V], error) {
	return ToDictionaryWith(ctx, s, key, val, comparer.Default[K]())
}

// ToDictionaryWith is ToDictionary under a custom key equality.
func ToDictionaryWith[T, K, V any](ctx context.Context, s *Seq[T], key func(T) K, val func(T) V, eq comparer.Equality[K]) (*lookup.Dictionary[K, V], error) {
	if err := checkKeyed(key, eq); err != nil {
		return nil, err
	}
	if val == nil {
		return nil, errors.MissingArgument("elementSelector")
	}
	it := s.create(ctx)
	defer it.Close()
	b := newBudget(ctx, "ToDictionary")
	d := lookup.NewDictionary[K, V](eq)
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := b.grow(); err != nil {
			return nil, err
		}
		if err := d.Add(key(v), val(v)); err != nil {
			return nil, err
		}
	}
	b.done()
	return d, nil
}

// ToDictionaryKV reads key-value pairs into a Dictionary.
func ToDictionaryKV[K comparable, V any](ctx context.Context, s *Seq[KeyValue[K, V]]) (*lookup.Dictionary[K, V], error) {
	return ToDictionaryWith(ctx, s,
		func(kv KeyValue[K, V]) K { return kv.Key },
		func(kv KeyValue[K, V]) V { return kv.Value },
		comparer.Default[K]())
}

// ToHashSet reads s in full into a Set. Two equal values fail with a
// duplicate-key error.
func ToHashSet[T comparable](ctx context.Context, s *Seq[T]) (*lookup.Set[T], error) {
	return ToHashSetWith(ctx, s, comparer.Default[T]())
}

// ToHashSetWith is ToHashSet under a custom equality.
func ToHashSetWith[T any](ctx context.Context, s *Seq[T], eq comparer.Equality[T]) (*lookup.Set[T], error) {
	if eq == nil {
		return nil, errors.MissingArgument("comparer")
	}
	it := s.create(ctx)
	defer it.Close()
	b := newBudget(ctx, "ToHashSet")
	set := lookup.NewSet(eq)
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := b.grow(); err != nil {
			return nil, err
		}
		if err := set.AddUnique(v); err != nil {
			return nil, err
		}
	}
	b.done()
	return set, nil
}

// ToSet reads s in full into a Go set. Two equal values fail with a
// duplicate-key error.
func ToSet[T comparable](ctx context.Context, s *Seq[T]) (map[T]struct{}, error) {
	return ToMap(ctx, s, identity[T], func(T) struct{} { return struct{}{} })
}
