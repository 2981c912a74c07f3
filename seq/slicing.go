package seq

import (
	"context"

	"github.com/eapache/queue"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/span"
)

// Take yields the first n values. A non-positive n yields nothing.
func Take[T any](s *Seq[T], n int) *Seq[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeIter[T]{source: s.create(ctx), left: n}
		},
		count: func() (int, bool) {
			c, ok := TryCount(s)
			return min(c, n), ok
		},
	}
}

// Skip bypasses the first n values and yields the rest. A non-positive n
// yields every value.
func Skip[T any](s *Seq[T], n int) *Seq[T] {
	if n <= 0 {
		return s
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &skipIter[T]{source: s.create(ctx), left: n}
		},
		count: func() (int, bool) {
			c, ok := TryCount(s)
			return max(c-n, 0), ok
		},
	}
}

// TakeWhile yields values while fn holds and stops at the first value for
// which it does not.
func TakeWhile[T any](s *Seq[T], fn func(T) bool) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("predicate"))
	}
	return TakeWhileIndexed(s, func(_ int, v T) bool { return fn(v) })
}

// TakeWhileIndexed is TakeWhile with the zero-based position passed to fn.
func TakeWhileIndexed[T any](s *Seq[T], fn func(int, T) bool) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("predicate"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeWhileIter[T]{source: s.create(ctx), fn: fn}
		},
	}
}

// SkipWhile bypasses values while fn holds and yields the remainder,
// starting with the first value for which it does not.
func SkipWhile[T any](s *Seq[T], fn func(T) bool) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("predicate"))
	}
	return SkipWhileIndexed(s, func(_ int, v T) bool { return fn(v) })
}

// SkipWhileIndexed is SkipWhile with the zero-based position passed to fn.
func SkipWhileIndexed[T any](s *Seq[T], fn func(int, T) bool) *Seq[T] {
	if fn == nil {
		return Fail[T](errors.MissingArgument("predicate"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &skipWhileIter[T]{source: s.create(ctx), fn: fn}
		},
	}
}

// TakeLast yields the last n values. Only a window of n values is held
// while the source is read.
func TakeLast[T any](s *Seq[T], n int) *Seq[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeLastIter[T]{source: s.create(ctx), n: n}
		},
		count: func() (int, bool) {
			c, ok := TryCount(s)
			return min(c, n), ok
		},
	}
}

// SkipLast yields every value except the last n, lagging n values behind
// the source.
func SkipLast[T any](s *Seq[T], n int) *Seq[T] {
	if n <= 0 {
		return s
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &skipLastIter[T]{source: s.create(ctx), n: n, window: queue.New()}
		},
		count: func() (int, bool) {
			c, ok := TryCount(s)
			return max(c-n, 0), ok
		},
	}
}

// TakeRange yields the values inside r.
//
// When the length of s is known the range is resolved up front. Otherwise a
// range with both endpoints counted from the start is streamed and fails when
// the source ends before the range does, and a range with a from-end endpoint
// buffers the whole source first. A malformed range fails with an
// index-out-of-range error; it is never clamped.
func TakeRange[T any](s *Seq[T], r span.Range) *Seq[T] {
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			if c, ok := TryCount(s); ok {
				offset, n, err := r.Resolve(c)
				if err != nil {
					return &errIter[T]{err: err}
				}
				return Take(Skip(s, offset), n).create(ctx)
			}
			if !r.HasFromEnd() {
				start, end := r.Start().Value(), r.End().Value()
				if start > end {
					return &errIter[T]{err: errors.IndexOutOfRange(r.String(), -1)}
				}
				return &rangeStreamIter[T]{source: s.create(ctx), start: start, end: end, r: r}
			}
			return &rangeBufferIter[T]{source: s.create(ctx), r: r}
		},
		count: func() (int, bool) {
			c, ok := TryCount(s)
			if !ok {
				return 0, false
			}
			_, n, err := r.Resolve(c)
			return n, err == nil
		},
	}
}

// Chunk splits the values into slices of size elements. The last slice may
// be shorter. A size below one fails with an argument error.
func Chunk[T any](s *Seq[T], size int) *Seq[[]T] {
	if size < 1 {
		return Fail[[]T](errors.InvalidArgument("size", "must be at least 1"))
	}
	return &Seq[[]T]{
		create: func(ctx context.Context) Iterator[[]T] {
			return &chunkIter[T]{source: s.create(ctx), size: size}
		},
		count: func() (int, bool) {
			c, ok := TryCount(s)
			return (c + size - 1) / size, ok
		},
	}
}

// Reverse yields the values in reverse order. The source is buffered on the
// first pull.
func Reverse[T any](s *Seq[T]) *Seq[T] {
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &reverseIter[T]{source: s.create(ctx)}
		},
		count: s.count,
	}
}

// --- Iterator implementations ---

type takeIter[T any] struct {
	source Iterator[T]
	left   int
}

func (it *takeIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.left <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	it.left--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type skipIter[T any] struct {
	source Iterator[T]
	left   int
}

func (it *skipIter[T]) Next(ctx context.Context) (T, bool, error) {
	for it.left > 0 {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		it.left--
	}
	return it.source.Next(ctx)
}

func (it *skipIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(int, T) bool
	index  int
	done   bool
}

func (it *takeWhileIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	i := it.index
	it.index++
	if !it.fn(i, val) {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type skipWhileIter[T any] struct {
	source   Iterator[T]
	fn       func(int, T) bool
	index    int
	yielding bool
}

func (it *skipWhileIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok || it.yielding {
			return val, ok && err == nil, err
		}
		i := it.index
		it.index++
		if !it.fn(i, val) {
			it.yielding = true
			return val, true, nil
		}
	}
}

func (it *skipWhileIter[T]) Close() error { return it.source.Close() }

type takeLastIter[T any] struct {
	source Iterator[T]
	n      int
	window *queue.Queue
	filled bool
}

func (it *takeLastIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !it.filled {
		it.window = queue.New()
		for {
			val, ok, err := it.source.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				break
			}
			it.window.Add(val)
			if it.window.Length() > it.n {
				it.window.Remove()
			}
		}
		it.filled = true
	}
	if it.window.Length() == 0 {
		return zero, false, nil
	}
	val, _ := it.window.Remove().(T)
	return val, true, nil
}

func (it *takeLastIter[T]) Close() error { return it.source.Close() }

type skipLastIter[T any] struct {
	source Iterator[T]
	n      int
	window *queue.Queue
}

func (it *skipLastIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		it.window.Add(val)
		if it.window.Length() > it.n {
			out, _ := it.window.Remove().(T)
			return out, true, nil
		}
	}
}

func (it *skipLastIter[T]) Close() error { return it.source.Close() }

// rangeStreamIter yields positions [start, end) of a source of unknown length.
type rangeStreamIter[T any] struct {
	source Iterator[T]
	start  int
	end    int
	pos    int
	r      span.Range
}

func (it *rangeStreamIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for it.pos < it.end {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, errors.IndexOutOfRange(it.r.String(), it.pos)
		}
		it.pos++
		if it.pos > it.start {
			return val, true, nil
		}
	}
	return zero, false, nil
}

func (it *rangeStreamIter[T]) Close() error { return it.source.Close() }

type rangeBufferIter[T any] struct {
	source Iterator[T]
	r      span.Range
	items  []T
	loaded bool
}

func (it *rangeBufferIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !it.loaded {
		items, err := drain(ctx, it.source, "TakeRange")
		if err != nil {
			return zero, false, err
		}
		offset, n, err := it.r.Resolve(len(items))
		if err != nil {
			return zero, false, err
		}
		it.items = items[offset : offset+n]
		it.loaded = true
	}
	if len(it.items) == 0 {
		return zero, false, nil
	}
	val := it.items[0]
	it.items = it.items[1:]
	return val, true, nil
}

func (it *rangeBufferIter[T]) Close() error { return it.source.Close() }

type chunkIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *chunkIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.done {
		return nil, false, nil
	}
	var chunk []T
	for len(chunk) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			break
		}
		if chunk == nil {
			chunk = make([]T, 0, it.size)
		}
		chunk = append(chunk, val)
	}
	return chunk, len(chunk) > 0, nil
}

func (it *chunkIter[T]) Close() error { return it.source.Close() }

type reverseIter[T any] struct {
	source Iterator[T]
	items  []T
	loaded bool
}

func (it *reverseIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !it.loaded {
		items, err := drain(ctx, it.source, "Reverse")
		if err != nil {
			return zero, false, err
		}
		it.items = items
		it.loaded = true
	}
	n := len(it.items)
	if n == 0 {
		return zero, false, nil
	}
	val := it.items[n-1]
	it.items = it.items[:n-1]
	return val, true, nil
}

func (it *reverseIter[T]) Close() error { return it.source.Close() }
