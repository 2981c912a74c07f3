package seq

import (
	"context"

	"github.com/eapache/queue"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/span"
)

// First returns the first value, failing with an empty-sequence error when
// there is none.
func First[T any](ctx context.Context, s *Seq[T]) (T, error) {
	v, found, err := first(ctx, s, nil)
	if err == nil && !found {
		err = errors.EmptySequence("First")
	}
	return v, err
}

// FirstWhere returns the first value satisfying fn.
func FirstWhere[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (T, error) {
	if fn == nil {
		var zero T
		return zero, errors.MissingArgument("predicate")
	}
	v, found, err := first(ctx, s, fn)
	if err == nil && !found {
		err = errors.NoMatch("First")
	}
	return v, err
}

// FirstOrDefault returns the first value, or def when s is empty.
func FirstOrDefault[T any](ctx context.Context, s *Seq[T], def T) (T, error) {
	v, found, err := first(ctx, s, nil)
	if err != nil {
		return v, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

func first[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (T, bool, error) {
	it := s.create(ctx)
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		if fn == nil || fn(v) {
			return v, true, nil
		}
	}
}

// Last returns the last value, failing with an empty-sequence error when
// there is none.
func Last[T any](ctx context.Context, s *Seq[T]) (T, error) {
	v, found, err := last(ctx, s, nil)
	if err == nil && !found {
		err = errors.EmptySequence("Last")
	}
	return v, err
}

// LastWhere returns the last value satisfying fn.
func LastWhere[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (T, error) {
	if fn == nil {
		var zero T
		return zero, errors.MissingArgument("predicate")
	}
	v, found, err := last(ctx, s, fn)
	if err == nil && !found {
		err = errors.NoMatch("Last")
	}
	return v, err
}

// LastOrDefault returns the last value, or def when s is empty.
func LastOrDefault[T any](ctx context.Context, s *Seq[T], def T) (T, error) {
	v, found, err := last(ctx, s, nil)
	if err != nil {
		return v, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

func last[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (T, bool, error) {
	it := s.create(ctx)
	defer it.Close()
	var (
		result T
		found  bool
	)
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if !ok {
			return result, found, nil
		}
		if fn == nil || fn(v) {
			result, found = v, true
		}
	}
}

// Single returns the only value of s. It fails with an empty-sequence error
// when s is empty and a multiple-match error when it has more than one value.
func Single[T any](ctx context.Context, s *Seq[T]) (T, error) {
	v, found, err := single(ctx, s, nil, "Single")
	if err == nil && !found {
		err = errors.EmptySequence("Single")
	}
	return v, err
}

// SingleWhere returns the only value satisfying fn.
func SingleWhere[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (T, error) {
	if fn == nil {
		var zero T
		return zero, errors.MissingArgument("predicate")
	}
	v, found, err := single(ctx, s, fn, "Single")
	if err == nil && !found {
		err = errors.NoMatch("Single")
	}
	return v, err
}

// SingleOrDefault returns the only value of s, or def when s is empty. More
// than one value still fails.
func SingleOrDefault[T any](ctx context.Context, s *Seq[T], def T) (T, error) {
	v, found, err := single(ctx, s, nil, "SingleOrDefault")
	if err != nil {
		return v, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

// single stops pulling at the second match.
func single[T any](ctx context.Context, s *Seq[T], fn func(T) bool, op string) (T, bool, error) {
	it := s.create(ctx)
	defer it.Close()
	var (
		zero   T
		result T
		found  bool
	)
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return result, found, nil
		}
		if fn != nil && !fn(v) {
			continue
		}
		if found {
			return zero, false, errors.MultipleMatch(op)
		}
		result, found = v, true
	}
}

// ElementAt returns the value at idx. A from-end index on a sequence of
// unknown length keeps only a window of idx.Value() values while reading.
func ElementAt[T any](ctx context.Context, s *Seq[T], idx span.Index) (T, error) {
	v, found, length, err := elementAt(ctx, s, idx)
	if err == nil && !found {
		err = errors.IndexOutOfRange(idx.String(), length)
	}
	return v, err
}

// ElementAtOrDefault returns the value at idx, or def when idx is out of range.
func ElementAtOrDefault[T any](ctx context.Context, s *Seq[T], idx span.Index, def T) (T, error) {
	v, found, _, err := elementAt(ctx, s, idx)
	if err != nil {
		return v, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

// elementAt reports the length it observed, or -1 when it stopped early.
func elementAt[T any](ctx context.Context, s *Seq[T], idx span.Index) (T, bool, int, error) {
	var zero T
	if c, ok := TryCount(s); ok {
		pos, err := idx.Resolve(c)
		if err != nil {
			return zero, false, c, nil
		}
		idx = span.FromStart(pos)
	}
	it := s.create(ctx)
	defer it.Close()
	if !idx.IsFromEnd() {
		for i := 0; ; i++ {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return zero, false, -1, err
			}
			if !ok {
				return zero, false, i, nil
			}
			if i == idx.Value() {
				return v, true, -1, nil
			}
		}
	}
	n := idx.Value()
	if n == 0 {
		return zero, false, -1, nil
	}
	window := queue.New()
	seen := 0
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return zero, false, -1, err
		}
		if !ok {
			break
		}
		seen++
		window.Add(v)
		if window.Length() > n {
			window.Remove()
		}
	}
	if window.Length() < n {
		return zero, false, seen, nil
	}
	v, _ := window.Peek().(T)
	return v, true, seen, nil
}

// Any reports whether s has at least one value.
func Any[T any](ctx context.Context, s *Seq[T]) (bool, error) {
	if c, ok := TryCount(s); ok {
		return c > 0, nil
	}
	_, found, err := first(ctx, s, nil)
	return found, err
}

// AnyWhere reports whether any value satisfies fn.
func AnyWhere[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (bool, error) {
	if fn == nil {
		return false, errors.MissingArgument("predicate")
	}
	_, found, err := first(ctx, s, fn)
	return found, err
}

// All reports whether every value satisfies fn. It is true for an empty s.
func All[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (bool, error) {
	if fn == nil {
		return false, errors.MissingArgument("predicate")
	}
	_, found, err := first(ctx, s, func(v T) bool { return !fn(v) })
	return !found && err == nil, err
}

// Contains reports whether s holds a value equal to v.
func Contains[T comparable](ctx context.Context, s *Seq[T], v T) (bool, error) {
	return AnyWhere(ctx, s, func(x T) bool { return x == v })
}

// ContainsWith reports whether s holds a value equal to v under eq.
func ContainsWith[T any](ctx context.Context, s *Seq[T], v T, eq comparer.Equality[T]) (bool, error) {
	if eq == nil {
		return false, errors.MissingArgument("comparer")
	}
	return AnyWhere(ctx, s, func(x T) bool { return eq.Equal(x, v) })
}

// Count returns the number of values, without enumerating when the count is known.
func Count[T any](ctx context.Context, s *Seq[T]) (int, error) {
	if c, ok := TryCount(s); ok {
		return c, nil
	}
	n, err := LongCount(ctx, s)
	return int(n), err
}

// CountWhere returns the number of values satisfying fn.
func CountWhere[T any](ctx context.Context, s *Seq[T], fn func(T) bool) (int, error) {
	if fn == nil {
		return 0, errors.MissingArgument("predicate")
	}
	n, err := LongCount(ctx, Where(s, fn))
	return int(n), err
}

// LongCount returns the number of values as an int64.
func LongCount[T any](ctx context.Context, s *Seq[T]) (int64, error) {
	if c, ok := TryCount(s); ok {
		return int64(c), nil
	}
	it := s.create(ctx)
	defer it.Close()
	var n int64
	for {
		_, ok, err := it.Next(ctx)
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// SequenceEqual reports whether a and b hold equal values in the same order.
func SequenceEqual[T comparable](ctx context.Context, a, b *Seq[T]) (bool, error) {
	return SequenceEqualWith(ctx, a, b, comparer.Default[T]())
}

// SequenceEqualWith is SequenceEqual under a custom equality.
func SequenceEqualWith[T any](ctx context.Context, a, b *Seq[T], eq comparer.Equality[T]) (bool, error) {
	if eq == nil {
		return false, errors.MissingArgument("comparer")
	}
	if n, ok := TryCount(a); ok {
		if m, ok := TryCount(b); ok && n != m {
			return false, nil
		}
	}
	ia := a.create(ctx)
	defer ia.Close()
	ib := b.create(ctx)
	defer ib.Close()
	for {
		x, okA, err := ia.Next(ctx)
		if err != nil {
			return false, err
		}
		y, okB, err := ib.Next(ctx)
		if err != nil {
			return false, err
		}
		if okA != okB {
			return false, nil
		}
		if !okA {
			return true, nil
		}
		if !eq.Equal(x, y) {
			return false, nil
		}
	}
}

// Aggregate folds s with fn, using the first value as the seed. An empty s
// fails with an empty-sequence error.
func Aggregate[T any](ctx context.Context, s *Seq[T], fn func(T, T) T) (T, error) {
	var zero T
	if fn == nil {
		return zero, errors.MissingArgument("func")
	}
	it := s.create(ctx)
	defer it.Close()
	acc, ok, err := it.Next(ctx)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, errors.EmptySequence("Aggregate")
	}
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			return acc, nil
		}
		acc = fn(acc, v)
	}
}

// AggregateSeed folds s with fn starting from seed.
func AggregateSeed[T, A any](ctx context.Context, s *Seq[T], seed A, fn func(A, T) A) (A, error) {
	if fn == nil {
		var zero A
		return zero, errors.MissingArgument("func")
	}
	acc := seed
	err := ForEach(ctx, s, func(_ context.Context, v T) error {
		acc = fn(acc, v)
		return nil
	})
	if err != nil {
		var zero A
		return zero, err
	}
	return acc, nil
}

// AggregateResult folds s with fn starting from seed and maps the final
// accumulator through result.
func AggregateResult[T, A, R any](ctx context.Context, s *Seq[T], seed A, fn func(A, T) A, result func(A) R) (R, error) {
	if result == nil {
		var zero R
		return zero, errors.MissingArgument("resultSelector")
	}
	acc, err := AggregateSeed(ctx, s, seed, fn)
	if err != nil {
		var zero R
		return zero, err
	}
	return result(acc), nil
}
