package seq

import (
	"context"
	"iter"
	"maps"

	"github.com/kbukum/seqkit/errors"
)

// Iterator provides pull-based sequential access to one pass over a sequence.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Sized is implemented by iterators that know how many elements they will
// produce. From uses it to give the sequence a count probe.
type Sized interface {
	Size() (int, bool)
}

// Seq is a lazy, pull-based sequence description.
// No work happens until values are pulled through Iter, ToSlice, ForEach or a
// terminal. A Seq is immutable; every enumeration creates fresh iterator state.
type Seq[T any] struct {
	create func(ctx context.Context) Iterator[T]
	// count reports the exact element count without enumerating, when known.
	count func() (int, bool)
}

// Runnable is a fully-configured sequence consumer ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run executes the consumer until completion or context cancellation.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// --- Constructors ---

// From creates a single-pass sequence from an existing Iterator. Enumerating
// it a second time continues where the first enumeration stopped.
func From[T any](it Iterator[T]) *Seq[T] {
	s := &Seq[T]{
		create: func(_ context.Context) Iterator[T] {
			return it
		},
	}
	if sized, ok := it.(Sized); ok {
		s.count = sized.Size
	}
	return s
}

// FromSlice creates a re-iterable sequence over a slice. The slice is read at
// enumeration time, not copied.
func FromSlice[T any](items []T) *Seq[T] {
	return &Seq[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
		count: func() (int, bool) { return len(items), true },
	}
}

// FromValues creates a sequence over its arguments.
func FromValues[T any](items ...T) *Seq[T] {
	return FromSlice(items)
}

// FromFunc creates a sequence from a factory that produces an Iterator per enumeration.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("factory"))
	}
	return &Seq[T]{create: fn}
}

// FromIter adapts a Go range-over-func sequence. The sequence is re-iterable
// when s is.
func FromIter[T any](s iter.Seq[T]) *Seq[T] {
	if s == nil {
		return Fail[T](errors.MissingArgument("source"))
	}
	return &Seq[T]{
		create: func(_ context.Context) Iterator[T] {
			next, stop := iter.Pull(s)
			return &pullIter[T]{next: next, stop: stop}
		},
	}
}

// FromMap creates a sequence over the entries of m in unspecified order.
// Entries are snapshotted when each enumeration starts.
func FromMap[K comparable, V any](m map[K]V) *Seq[KeyValue[K, V]] {
	return &Seq[KeyValue[K, V]]{
		create: func(_ context.Context) Iterator[KeyValue[K, V]] {
			items := make([]KeyValue[K, V], 0, len(m))
			for k, v := range maps.All(m) {
				items = append(items, KeyValue[K, V]{Key: k, Value: v})
			}
			return &sliceIter[KeyValue[K, V]]{items: items}
		},
		count: func() (int, bool) { return len(m), true },
	}
}

// Empty returns a sequence with no elements.
func Empty[T any]() *Seq[T] {
	return FromSlice[T](nil)
}

// Range returns the count consecutive integers starting at start.
func Range(start, count int) *Seq[int] {
	if count < 0 {
		return Fail[int](errors.InvalidArgument("count", "must not be negative"))
	}
	if count > 0 && start > maxInt-(count-1) {
		return Fail[int](errors.InvalidArgument("count", "start+count-1 overflows int"))
	}
	return &Seq[int]{
		create: func(_ context.Context) Iterator[int] {
			return &rangeIter{next: start, left: count}
		},
		count: func() (int, bool) { return count, true },
	}
}

// Repeat returns a sequence that yields v count times.
func Repeat[T any](v T, count int) *Seq[T] {
	if count < 0 {
		return Fail[T](errors.InvalidArgument("count", "must not be negative"))
	}
	return &Seq[T]{
		create: func(_ context.Context) Iterator[T] {
			return &repeatIter[T]{v: v, left: count}
		},
		count: func() (int, bool) { return count, true },
	}
}

// Defer calls factory at the start of every enumeration and enumerates the
// sequence it returns.
func Defer[T any](factory func() *Seq[T]) *Seq[T] {
	if factory == nil {
		return Fail[T](errors.MissingArgument("factory"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			s := factory()
			if s == nil {
				return &sliceIter[T]{}
			}
			return s.create(ctx)
		},
	}
}

// Fail returns a sequence whose first pull reports err. Operators use it for
// invalid arguments so that composition itself never fails.
func Fail[T any](err error) *Seq[T] {
	return &Seq[T]{
		create: func(_ context.Context) Iterator[T] {
			return &errIter[T]{err: err}
		},
	}
}

// Decorate wraps every iterator produced by s. The count probe is preserved,
// so wrap must neither add nor drop elements.
func Decorate[T any](s *Seq[T], wrap func(ctx context.Context, it Iterator[T]) Iterator[T]) *Seq[T] {
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return wrap(ctx, s.create(ctx))
		},
		count: s.count,
	}
}

// --- Access ---

// Iter returns the raw Iterator for one enumeration. The caller must Close() it.
func (s *Seq[T]) Iter(ctx context.Context) Iterator[T] {
	return s.create(ctx)
}

// All adapts one enumeration to a range-over-func loop. An error is yielded
// once, with the zero value, and ends the loop.
//
//	for v, err := range s.All(ctx) {
//	    if err != nil { ... }
//	}
func (s *Seq[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := s.create(ctx)
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}

// TryCount reports the number of elements of s when it is known without
// enumerating: slices, Range, Repeat and count-preserving operators over them.
func TryCount[T any](s *Seq[T]) (int, bool) {
	if s.count == nil {
		return 0, false
	}
	return s.count()
}

// --- Terminals ---

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](s *Seq[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			if sink == nil {
				return errors.MissingArgument("sink")
			}
			it := s.create(ctx)
			defer it.Close()
			for {
				val, ok, err := it.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](ctx context.Context, s *Seq[T], fn func(context.Context, T) error) error {
	return Drain(s, fn).Run(ctx)
}

// ToSlice runs the sequence and returns all values as a slice. On error no
// partial result is returned.
func ToSlice[T any](ctx context.Context, s *Seq[T]) ([]T, error) {
	it := s.create(ctx)
	defer it.Close()
	items, err := drain(ctx, it, "ToSlice")
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// --- Internal iterators ---

const maxInt = int(^uint(0) >> 1)

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Size() (int, bool) { return len(it.items) - it.index, true }

func (it *sliceIter[T]) Close() error { return nil }

type rangeIter struct {
	next int
	left int
}

func (it *rangeIter) Next(ctx context.Context) (int, bool, error) {
	if it.left <= 0 {
		return 0, false, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	v := it.next
	it.left--
	if it.left > 0 {
		it.next++
	}
	return v, true, nil
}

func (it *rangeIter) Close() error { return nil }

type repeatIter[T any] struct {
	v    T
	left int
}

func (it *repeatIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.left <= 0 {
		var zero T
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	it.left--
	return it.v, true, nil
}

func (it *repeatIter[T]) Close() error { return nil }

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := it.next()
	return v, ok, nil
}

func (it *pullIter[T]) Close() error {
	it.stop()
	return nil
}

// errIter reports err on every pull.
type errIter[T any] struct {
	err error
}

func (it *errIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it *errIter[T]) Close() error { return nil }
