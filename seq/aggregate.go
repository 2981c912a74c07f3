package seq

import (
	"cmp"
	"context"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/numeric"
)

// Sum adds the values of s. An empty s sums to zero. Integer overflow fails
// with an arithmetic-overflow error.
func Sum[N numeric.Number](ctx context.Context, s *Seq[N]) (N, error) {
	return SumOf(ctx, s, numeric.Of[N]())
}

// SumBy adds the projections fn(v).
func SumBy[T any, N numeric.Number](ctx context.Context, s *Seq[T], fn func(T) N) (N, error) {
	if fn == nil {
		var zero N
		return zero, errors.MissingArgument("selector")
	}
	return Sum(ctx, Select(s, fn))
}

// SumOf adds the values of s in the numeric domain k.
func SumOf[N, A, R any](ctx context.Context, s *Seq[N], k numeric.Kind[N, A, R]) (N, error) {
	acc, _, err := fold(ctx, s, present[N], k, "Sum")
	if err != nil {
		var zero N
		return zero, err
	}
	return k.Total(acc), nil
}

// SumNullable adds the non-nil values of s. Nil values are skipped; when
// every value is nil the sum is zero.
func SumNullable[N numeric.Number](ctx context.Context, s *Seq[*N]) (N, error) {
	return SumNullableOf(ctx, s, numeric.Of[N]())
}

// SumNullableOf is SumNullable in the numeric domain k.
func SumNullableOf[N, A, R any](ctx context.Context, s *Seq[*N], k numeric.Kind[N, A, R]) (N, error) {
	acc, _, err := fold(ctx, s, deref[N], k, "Sum")
	if err != nil {
		var zero N
		return zero, err
	}
	return k.Total(acc), nil
}

// Average returns the arithmetic mean of s. An empty s fails with an
// empty-sequence error. Integers are added in 64 bits, so the mean of
// narrower types never overflows.
func Average[N numeric.Number](ctx context.Context, s *Seq[N]) (float64, error) {
	return AverageOf(ctx, s, numeric.Mean[N]())
}

// AverageBy returns the mean of the projections fn(v).
func AverageBy[T any, N numeric.Number](ctx context.Context, s *Seq[T], fn func(T) N) (float64, error) {
	if fn == nil {
		return 0, errors.MissingArgument("selector")
	}
	return Average(ctx, Select(s, fn))
}

// AverageOf returns the mean of s in the numeric domain k.
func AverageOf[N, A, R any](ctx context.Context, s *Seq[N], k numeric.Kind[N, A, R]) (R, error) {
	var zero R
	acc, n, err := fold(ctx, s, present[N], k, "Average")
	if err != nil {
		return zero, err
	}
	if n == 0 {
		return zero, errors.EmptySequence("Average")
	}
	return k.Mean(acc, n), nil
}

// AverageNullable returns the mean of the non-nil values of s, or nil when
// there are none.
func AverageNullable[N numeric.Number](ctx context.Context, s *Seq[*N]) (*float64, error) {
	return AverageNullableOf(ctx, s, numeric.Mean[N]())
}

// AverageNullableOf is AverageNullable in the numeric domain k.
func AverageNullableOf[N, A, R any](ctx context.Context, s *Seq[*N], k numeric.Kind[N, A, R]) (*R, error) {
	acc, n, err := fold(ctx, s, deref[N], k, "Average")
	if err != nil || n == 0 {
		return nil, err
	}
	mean := k.Mean(acc, n)
	return &mean, nil
}

// Min returns the smallest value. An empty s fails with an empty-sequence
// error. NaN is smaller than every other float.
func Min[T cmp.Ordered](ctx context.Context, s *Seq[T]) (T, error) {
	return MinWith(ctx, s, comparer.Natural[T]())
}

// Max returns the largest value. An empty s fails with an empty-sequence error.
func Max[T cmp.Ordered](ctx context.Context, s *Seq[T]) (T, error) {
	return MaxWith(ctx, s, comparer.Natural[T]())
}

// MinWith returns the smallest value under ord.
func MinWith[T any](ctx context.Context, s *Seq[T], ord comparer.Ordering[T]) (T, error) {
	return MinByWith(ctx, s, identity[T], ord)
}

// MaxWith returns the largest value under ord.
func MaxWith[T any](ctx context.Context, s *Seq[T], ord comparer.Ordering[T]) (T, error) {
	return MaxByWith(ctx, s, identity[T], ord)
}

// MinBy returns the first value with the smallest key.
func MinBy[T any, K cmp.Ordered](ctx context.Context, s *Seq[T], key func(T) K) (T, error) {
	return MinByWith(ctx, s, key, comparer.Natural[K]())
}

// MaxBy returns the first value with the largest key.
func MaxBy[T any, K cmp.Ordered](ctx context.Context, s *Seq[T], key func(T) K) (T, error) {
	return MaxByWith(ctx, s, key, comparer.Natural[K]())
}

// MinByWith is MinBy under a custom key ordering.
func MinByWith[T, K any](ctx context.Context, s *Seq[T], key func(T) K, ord comparer.Ordering[K]) (T, error) {
	return extremeOrFail(ctx, s, key, ord, -1, "Min")
}

// MaxByWith is MaxBy under a custom key ordering.
func MaxByWith[T, K any](ctx context.Context, s *Seq[T], key func(T) K, ord comparer.Ordering[K]) (T, error) {
	return extremeOrFail(ctx, s, key, ord, 1, "Max")
}

// MinNullable returns the smallest non-nil value, or nil when there is none.
func MinNullable[T cmp.Ordered](ctx context.Context, s *Seq[*T]) (*T, error) {
	return extremeNullable(ctx, s, -1)
}

// MaxNullable returns the largest non-nil value, or nil when there is none.
func MaxNullable[T cmp.Ordered](ctx context.Context, s *Seq[*T]) (*T, error) {
	return extremeNullable(ctx, s, 1)
}

func extremeNullable[T cmp.Ordered](ctx context.Context, s *Seq[*T], sign int) (*T, error) {
	nonNil := Where(s, func(p *T) bool { return p != nil })
	best, found, err := extreme(ctx, nonNil, func(p *T) T { return *p }, comparer.Natural[T](), sign)
	if err != nil || !found {
		return nil, err
	}
	return best, nil
}

func extremeOrFail[T, K any](ctx context.Context, s *Seq[T], key func(T) K, ord comparer.Ordering[K], sign int, op string) (T, error) {
	var zero T
	if key == nil {
		return zero, errors.MissingArgument("keySelector")
	}
	if ord == nil {
		return zero, errors.MissingArgument("comparer")
	}
	best, found, err := extreme(ctx, s, key, ord, sign)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, errors.EmptySequence(op)
	}
	return best, nil
}

// extreme keeps the first value whose key compares with sign against every
// later key; sign is -1 for the minimum and 1 for the maximum.
func extreme[T, K any](ctx context.Context, s *Seq[T], key func(T) K, ord comparer.Ordering[K], sign int) (T, bool, error) {
	it := s.create(ctx)
	defer it.Close()
	var (
		best    T
		bestKey K
		found   bool
	)
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if !ok {
			return best, found, nil
		}
		k := key(v)
		if !found || ord.Compare(k, bestKey)*sign > 0 {
			best, bestKey, found = v, k, true
		}
	}
}

// fold accumulates the present values of s in k and counts them.
func fold[E, N, A, R any](ctx context.Context, s *Seq[E], unwrap func(E) (N, bool), k numeric.Kind[N, A, R], op string) (A, int64, error) {
	it := s.create(ctx)
	defer it.Close()
	acc := k.Zero
	var n int64
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return k.Zero, 0, err
		}
		if !ok {
			return acc, n, nil
		}
		v, ok := unwrap(e)
		if !ok {
			continue
		}
		next, ok := k.Add(acc, v)
		if !ok {
			return k.Zero, 0, errors.Overflow(k.Name).WithDetail("operation", op)
		}
		acc = next
		n++
	}
}

func present[N any](v N) (N, bool) { return v, true }

func deref[N any](p *N) (N, bool) {
	if p == nil {
		var zero N
		return zero, false
	}
	return *p, true
}
