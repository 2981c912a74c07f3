package seq

import (
	"cmp"
	"context"
	"slices"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
)

// Ordered is a sequence with an ordering specification. It enumerates like
// any other sequence; ThenBy and ThenByDescending refine the ordering
// without sorting. Sorting happens once per enumeration, on the first pull.
type Ordered[T any] struct {
	*Seq[T]
	source *Seq[T]
	steps  []step[T]
}

// step prepares a comparator over positions of a buffer. Keys are projected
// once per element when the comparator is prepared.
type step[T any] func(items []T) func(i, j int) int

func makeStep[T, K any](key func(T) K, ord comparer.Ordering[K], descending bool) step[T] {
	return func(items []T) func(i, j int) int {
		keys := make([]K, len(items))
		for i, v := range items {
			keys[i] = key(v)
		}
		if descending {
			return func(i, j int) int { return ord.Compare(keys[j], keys[i]) }
		}
		return func(i, j int) int { return ord.Compare(keys[i], keys[j]) }
	}
}

func newOrdered[T any](source *Seq[T], steps []step[T]) *Ordered[T] {
	o := &Ordered[T]{source: source, steps: steps}
	o.Seq = &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &orderIter[T]{source: source.create(ctx), steps: steps}
		},
		count: source.count,
	}
	return o
}

func orderBy[T, K any](s *Seq[T], key func(T) K, ord comparer.Ordering[K], descending bool) *Ordered[T] {
	if key == nil {
		return newOrdered(Fail[T](errors.MissingArgument("keySelector")), nil)
	}
	if ord == nil {
		return newOrdered(Fail[T](errors.MissingArgument("comparer")), nil)
	}
	return newOrdered(s, []step[T]{makeStep(key, ord, descending)})
}

func thenBy[T, K any](o *Ordered[T], key func(T) K, ord comparer.Ordering[K], descending bool) *Ordered[T] {
	if key == nil {
		return newOrdered(Fail[T](errors.MissingArgument("keySelector")), nil)
	}
	if ord == nil {
		return newOrdered(Fail[T](errors.MissingArgument("comparer")), nil)
	}
	// Clip so sibling ThenBy calls on the same o never share a backing array.
	return newOrdered(o.source, append(slices.Clip(o.steps), makeStep(key, ord, descending)))
}

// OrderBy sorts values by key, ascending. The sort is stable.
func OrderBy[T any, K cmp.Ordered](s *Seq[T], key func(T) K) *Ordered[T] {
	return orderBy(s, key, comparer.Natural[K](), false)
}

// OrderByDescending sorts values by key, descending. The sort is stable.
func OrderByDescending[T any, K cmp.Ordered](s *Seq[T], key func(T) K) *Ordered[T] {
	return orderBy(s, key, comparer.Natural[K](), true)
}

// OrderByWith sorts values by key under a custom ordering.
func OrderByWith[T, K any](s *Seq[T], key func(T) K, ord comparer.Ordering[K]) *Ordered[T] {
	return orderBy(s, key, ord, false)
}

// OrderByDescendingWith sorts values by key under a custom ordering, descending.
func OrderByDescendingWith[T, K any](s *Seq[T], key func(T) K, ord comparer.Ordering[K]) *Ordered[T] {
	return orderBy(s, key, ord, true)
}

// Order sorts values ascending.
func Order[T cmp.Ordered](s *Seq[T]) *Ordered[T] {
	return orderBy(s, identity[T], comparer.Natural[T](), false)
}

// OrderDescending sorts values descending.
func OrderDescending[T cmp.Ordered](s *Seq[T]) *Ordered[T] {
	return orderBy(s, identity[T], comparer.Natural[T](), true)
}

// OrderWith sorts values under a custom ordering.
func OrderWith[T any](s *Seq[T], ord comparer.Ordering[T]) *Ordered[T] {
	return orderBy(s, identity[T], ord, false)
}

// ThenBy breaks ties left by o with key, ascending.
func ThenBy[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return thenBy(o, key, comparer.Natural[K](), false)
}

// ThenByDescending breaks ties left by o with key, descending.
func ThenByDescending[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return thenBy(o, key, comparer.Natural[K](), true)
}

// ThenByWith breaks ties left by o with key under a custom ordering.
func ThenByWith[T, K any](o *Ordered[T], key func(T) K, ord comparer.Ordering[K]) *Ordered[T] {
	return thenBy(o, key, ord, false)
}

// ThenByDescendingWith breaks ties left by o with key under a custom ordering, descending.
func ThenByDescendingWith[T, K any](o *Ordered[T], key func(T) K, ord comparer.Ordering[K]) *Ordered[T] {
	return thenBy(o, key, ord, true)
}

type orderIter[T any] struct {
	source Iterator[T]
	steps  []step[T]
	items  []T
	perm   []int
	pos    int
	sorted bool
}

func (it *orderIter[T]) sort(ctx context.Context) error {
	items, err := drain(ctx, it.source, "OrderBy")
	if err != nil {
		return err
	}
	cmps := make([]func(i, j int) int, len(it.steps))
	for i, s := range it.steps {
		cmps[i] = s(items)
	}
	perm := make([]int, len(items))
	for i := range perm {
		perm[i] = i
	}
	// The original position is the final key, which makes the unstable
	// sort stable.
	slices.SortFunc(perm, func(a, b int) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return cmp.Compare(a, b)
	})
	it.items = items
	it.perm = perm
	return nil
}

func (it *orderIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !it.sorted {
		if err := it.sort(ctx); err != nil {
			return zero, false, err
		}
		it.sorted = true
	}
	if it.pos >= len(it.perm) {
		return zero, false, nil
	}
	val := it.items[it.perm[it.pos]]
	it.pos++
	return val, true, nil
}

func (it *orderIter[T]) Close() error { return it.source.Close() }
