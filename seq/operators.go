package seq

import (
	"context"
	"reflect"

	"github.com/kbukum/seqkit/errors"
)

// Select transforms each value using fn.
func Select[T, R any](s *Seq[T], fn func(T) R) *Seq[R] {
	if fn == nil {
		return Fail[R](errors.MissingArgument("selector"))
	}
	return project(s, func(_ context.Context, _ int, v T) (R, error) { return fn(v), nil }, true)
}

// SelectIndexed transforms each value using fn, which also receives the
// zero-based position of the value.
func SelectIndexed[T, R any](s *Seq[T], fn func(int, T) R) *Seq[R] {
	if fn == nil {
		return Fail[R](errors.MissingArgument("selector"))
	}
	return project(s, func(_ context.Context, i int, v T) (R, error) { return fn(i, v), nil }, true)
}

// SelectErr transforms each value using a fallible fn. The first error ends
// the enumeration.
func SelectErr[T, R any](s *Seq[T], fn func(context.Context, T) (R, error)) *Seq[R] {
	if fn == nil {
		return Fail[R](errors.MissingArgument("selector"))
	}
	return project(s, func(ctx context.Context, _ int, v T) (R, error) { return fn(ctx, v) }, false)
}

// Enumerate pairs each value with its zero-based position.
func Enumerate[T any](s *Seq[T]) *Seq[Indexed[T]] {
	return SelectIndexed(s, func(i int, v T) Indexed[T] { return Indexed[T]{Index: i, Value: v} })
}

// project maps s through fn. Only an infallible fn may keep the source's
// count: a fallible one has to be enumerated before its length is known.
func project[T, R any](s *Seq[T], fn func(context.Context, int, T) (R, error), infallible bool) *Seq[R] {
	out := &Seq[R]{
		create: func(ctx context.Context) Iterator[R] {
			return &selectIter[T, R]{source: s.create(ctx), fn: fn}
		},
	}
	if infallible {
		out.count = s.count
	}
	return out
}

// Where keeps only values that satisfy the predicate.
func Where[T any](s *Seq[T], fn func(T) bool) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("predicate"))
	}
	return WhereIndexed(s, func(_ int, v T) bool { return fn(v) })
}

// WhereIndexed keeps only values that satisfy the predicate, which also
// receives the zero-based position of the value in the source.
func WhereIndexed[T any](s *Seq[T], fn func(int, T) bool) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("predicate"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &whereIter[T]{source: s.create(ctx), fn: fn}
		},
	}
}

// SelectMany projects each value to a sequence and flattens the results.
// A nil inner sequence contributes nothing.
func SelectMany[T, R any](s *Seq[T], fn func(T) *Seq[R]) *Seq[R] {
	if fn == nil {
		return Fail[R](errors.MissingArgument("selector"))
	}
	return SelectManyWith(s, fn, func(_ T, r R) R { return r })
}

// SelectManyWith projects each value to a sequence of C and combines every
// inner element with its outer value through result.
func SelectManyWith[T, C, R any](s *Seq[T], collection func(T) *Seq[C], result func(T, C) R) *Seq[R] {
	if collection == nil {
		return Fail[R](errors.MissingArgument("collectionSelector"))
	}
	if result == nil {
		return Fail[R](errors.MissingArgument("resultSelector"))
	}
	return &Seq[R]{
		create: func(ctx context.Context) Iterator[R] {
			return &selectManyIter[T, C, R]{source: s.create(ctx), collection: collection, result: result}
		},
	}
}

// Tap calls fn as a side-effect for each value, then passes the value through unchanged.
// Use for logging, metrics, or progress reporting. The result has no known
// count, so counting terminals still run fn for every value.
func Tap[T any](s *Seq[T], fn func(context.Context, T) error) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("action"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &tapIter[T]{source: s.create(ctx), fn: fn}
		},
	}
}

// Concat joins sequences end to end. Each operand is opened only when the
// previous one is exhausted.
func Concat[T any](seqs ...*Seq[T]) *Seq[T] {
	for _, s := range seqs {
		if s == nil {
			return Fail[T](errors.MissingArgument("second"))
		}
	}
	return &Seq[T]{
		create: func(_ context.Context) Iterator[T] {
			return &concatIter[T]{seqs: seqs}
		},
		count: func() (int, bool) {
			total := 0
			for _, s := range seqs {
				n, ok := TryCount(s)
				if !ok || n > maxInt-total {
					return 0, false
				}
				total += n
			}
			return total, true
		},
	}
}

// Append yields the values of s followed by v.
func Append[T any](s *Seq[T], v T) *Seq[T] {
	return Concat(s, FromValues(v))
}

// Prepend yields v followed by the values of s.
func Prepend[T any](s *Seq[T], v T) *Seq[T] {
	return Concat(FromValues(v), s)
}

// Cast converts each value to R with a type assertion. A value that is not
// an R fails the enumeration with an invalid-cast error.
func Cast[R, T any](s *Seq[T]) *Seq[R] {
	target := reflect.TypeFor[R]().String()
	return project(s, func(_ context.Context, _ int, v T) (R, error) {
		r, ok := any(v).(R)
		if !ok {
			return r, errors.InvalidCast(v, target)
		}
		return r, nil
	}, false)
}

// OfType keeps the values that are of type R, converted to R.
func OfType[R, T any](s *Seq[T]) *Seq[R] {
	return &Seq[R]{
		create: func(ctx context.Context) Iterator[R] {
			return &ofTypeIter[T, R]{source: s.create(ctx)}
		},
	}
}

// DefaultIfEmpty yields the values of s, or def alone when s is empty.
func DefaultIfEmpty[T any](s *Seq[T], def T) *Seq[T] {
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &defaultIter[T]{source: s.create(ctx), def: def}
		},
		count: func() (int, bool) {
			n, ok := TryCount(s)
			return max(n, 1), ok
		},
	}
}

// Zip pairs up the values of a and b, stopping at the end of the shorter one.
func Zip[A, B any](a *Seq[A], b *Seq[B]) *Seq[Pair[A, B]] {
	return ZipWith(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} })
}

// ZipWith combines the values of a and b pairwise through fn.
func ZipWith[A, B, R any](a *Seq[A], b *Seq[B], fn func(A, B) R) *Seq[R] {
	if fn == nil {
		return Fail[R](errors.MissingArgument("resultSelector"))
	}
	return &Seq[R]{
		create: func(ctx context.Context) Iterator[R] {
			return &zipIter[A, B, R]{a: a.create(ctx), b: b.create(ctx), fn: fn}
		},
		count: func() (int, bool) {
			n, ok := TryCount(a)
			m, ok2 := TryCount(b)
			return min(n, m), ok && ok2
		},
	}
}

// Zip3 combines the values of three sequences, stopping at the end of the shortest.
func Zip3[A, B, C any](a *Seq[A], b *Seq[B], c *Seq[C]) *Seq[Triple[A, B, C]] {
	return ZipWith(Zip(a, b), c, func(p Pair[A, B], z C) Triple[A, B, C] {
		return Triple[A, B, C]{First: p.First, Second: p.Second, Third: z}
	})
}

// --- Iterator implementations ---

type selectIter[T, R any] struct {
	source Iterator[T]
	fn     func(context.Context, int, T) (R, error)
	index  int
}

func (it *selectIter[T, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero R
		return zero, false, err
	}
	out, err := it.fn(ctx, it.index, val)
	if err != nil {
		var zero R
		return zero, false, err
	}
	it.index++
	return out, true, nil
}

func (it *selectIter[T, R]) Close() error { return it.source.Close() }

type whereIter[T any] struct {
	source Iterator[T]
	fn     func(int, T) bool
	index  int
}

func (it *whereIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		i := it.index
		it.index++
		if it.fn(i, val) {
			return val, true, nil
		}
	}
}

func (it *whereIter[T]) Close() error { return it.source.Close() }

type selectManyIter[T, C, R any] struct {
	source     Iterator[T]
	collection func(T) *Seq[C]
	result     func(T, C) R
	outer      T
	current    Iterator[C]
}

func (it *selectManyIter[T, C, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				var zero R
				return zero, false, err
			}
			if ok {
				return it.result(it.outer, val), true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero R
			return zero, false, err
		}
		if inner := it.collection(in); inner != nil {
			it.outer = in
			it.current = inner.create(ctx)
		}
	}
}

func (it *selectManyIter[T, C, R]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
	}
	return it.source.Close()
}

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(ctx, val); err != nil {
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	seqs    []*Seq[T]
	index   int
	current Iterator[T]
}

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.index < len(it.seqs) {
		if it.current == nil {
			it.current = it.seqs[it.index].create(ctx)
		}
		val, ok, err := it.current.Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		err = it.current.Close()
		it.current = nil
		it.index++
		if err != nil {
			return val, false, err
		}
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	if it.current == nil {
		return nil
	}
	err := it.current.Close()
	it.current = nil
	return err
}

type ofTypeIter[T, R any] struct {
	source Iterator[T]
}

func (it *ofTypeIter[T, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero R
			return zero, false, err
		}
		if r, ok := any(val).(R); ok {
			return r, true, nil
		}
	}
}

func (it *ofTypeIter[T, R]) Close() error { return it.source.Close() }

type defaultIter[T any] struct {
	source  Iterator[T]
	def     T
	started bool
	done    bool
}

func (it *defaultIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil {
		return val, false, err
	}
	if !ok && !it.started {
		it.done = true
		return it.def, true, nil
	}
	it.started = true
	return val, ok, nil
}

func (it *defaultIter[T]) Close() error { return it.source.Close() }

type zipIter[A, B, R any] struct {
	a  Iterator[A]
	b  Iterator[B]
	fn func(A, B) R
}

func (it *zipIter[A, B, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	x, ok, err := it.a.Next(ctx)
	if err != nil || !ok {
		var zero R
		return zero, false, err
	}
	y, ok, err := it.b.Next(ctx)
	if err != nil || !ok {
		var zero R
		return zero, false, err
	}
	return it.fn(x, y), true, nil
}

func (it *zipIter[A, B, R]) Close() error {
	errA := it.a.Close()
	if errB := it.b.Close(); errA == nil {
		return errB
	}
	return errA
}
