package seq

import (
	"context"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/lookup"
)

func identity[T any](v T) T { return v }

// Distinct yields each distinct value once, keeping first occurrences in order.
func Distinct[T comparable](s *Seq[T]) *Seq[T] {
	return DistinctByWith(s, identity[T], comparer.Default[T]())
}

// DistinctWith is Distinct under a custom equality.
func DistinctWith[T any](s *Seq[T], eq comparer.Equality[T]) *Seq[T] {
	return DistinctByWith(s, identity[T], eq)
}

// DistinctBy yields the first value for each distinct key.
func DistinctBy[T any, K comparable](s *Seq[T], key func(T) K) *Seq[T] {
	return DistinctByWith(s, key, comparer.Default[K]())
}

// DistinctByWith is DistinctBy under a custom key equality.
func DistinctByWith[T, K any](s *Seq[T], key func(T) K, eq comparer.Equality[K]) *Seq[T] {
	if key == nil {
		return Fail[T](errors.MissingArgument("keySelector"))
	}
	if eq == nil {
		return Fail[T](errors.MissingArgument("comparer"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &distinctIter[T, K]{source: s.create(ctx), key: key, seen: lookup.NewSet(eq), budget: newBudget(ctx, "Distinct")}
		},
	}
}

// Union yields the distinct values of a followed by those of b not already seen.
func Union[T comparable](a, b *Seq[T]) *Seq[T] {
	return Distinct(Concat(a, b))
}

// UnionWith is Union under a custom equality.
func UnionWith[T any](a, b *Seq[T], eq comparer.Equality[T]) *Seq[T] {
	return DistinctWith(Concat(a, b), eq)
}

// UnionBy is Union keyed by a projection.
func UnionBy[T any, K comparable](a, b *Seq[T], key func(T) K) *Seq[T] {
	return DistinctBy(Concat(a, b), key)
}

// UnionByWith is UnionBy under a custom key equality.
func UnionByWith[T, K any](a, b *Seq[T], key func(T) K, eq comparer.Equality[K]) *Seq[T] {
	return DistinctByWith(Concat(a, b), key, eq)
}

// Intersect yields the distinct values of a that also occur in b. b is read
// in full on the first pull, before any value of a.
func Intersect[T comparable](a, b *Seq[T]) *Seq[T] {
	return IntersectByWith(a, b, identity[T], comparer.Default[T]())
}

// IntersectWith is Intersect under a custom equality.
func IntersectWith[T any](a, b *Seq[T], eq comparer.Equality[T]) *Seq[T] {
	return IntersectByWith(a, b, identity[T], eq)
}

// IntersectBy yields the values of a whose key occurs in keys, one per key.
func IntersectBy[T any, K comparable](a *Seq[T], keys *Seq[K], key func(T) K) *Seq[T] {
	return IntersectByWith(a, keys, key, comparer.Default[K]())
}

// IntersectByWith is IntersectBy under a custom key equality.
func IntersectByWith[T, K any](a *Seq[T], keys *Seq[K], key func(T) K, eq comparer.Equality[K]) *Seq[T] {
	return setFilter(a, keys, key, eq, true, "Intersect")
}

// Except yields the distinct values of a that do not occur in b. b is read
// in full on the first pull, before any value of a.
func Except[T comparable](a, b *Seq[T]) *Seq[T] {
	return ExceptByWith(a, b, identity[T], comparer.Default[T]())
}

// ExceptWith is Except under a custom equality.
func ExceptWith[T any](a, b *Seq[T], eq comparer.Equality[T]) *Seq[T] {
	return ExceptByWith(a, b, identity[T], eq)
}

// ExceptBy yields the values of a whose key does not occur in keys, one per key.
func ExceptBy[T any, K comparable](a *Seq[T], keys *Seq[K], key func(T) K) *Seq[T] {
	return ExceptByWith(a, keys, key, comparer.Default[K]())
}

// ExceptByWith is ExceptBy under a custom key equality.
func ExceptByWith[T, K any](a *Seq[T], keys *Seq[K], key func(T) K, eq comparer.Equality[K]) *Seq[T] {
	return setFilter(a, keys, key, eq, false, "Except")
}

func setFilter[T, K any](a *Seq[T], keys *Seq[K], key func(T) K, eq comparer.Equality[K], keep bool, op string) *Seq[T] {
	if key == nil {
		return Fail[T](errors.MissingArgument("keySelector"))
	}
	if eq == nil {
		return Fail[T](errors.MissingArgument("comparer"))
	}
	return &Seq[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &setFilterIter[T, K]{source: a.create(ctx), keys: keys, key: key, eq: eq, keep: keep, op: op}
		},
	}
}

// --- Iterator implementations ---

type distinctIter[T, K any] struct {
	source Iterator[T]
	key    func(T) K
	seen   *lookup.Set[K]
	budget *budget
}

func (it *distinctIter[T, K]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.seen.Add(it.key(val)) {
			if err := it.budget.grow(); err != nil {
				var zero T
				return zero, false, err
			}
			return val, true, nil
		}
	}
}

func (it *distinctIter[T, K]) Close() error { return it.source.Close() }

// setFilterIter streams source against a set built from keys.
// Intersect removes matched keys so each is yielded once; Except adds
// yielded keys for the same reason.
type setFilterIter[T, K any] struct {
	source Iterator[T]
	keys   *Seq[K]
	key    func(T) K
	eq     comparer.Equality[K]
	keep   bool
	op     string
	set    *lookup.Set[K]
}

func (it *setFilterIter[T, K]) load(ctx context.Context) error {
	src := it.keys.create(ctx)
	defer src.Close()
	b := newBudget(ctx, it.op)
	set := lookup.NewSet(it.eq)
	for {
		k, ok, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if set.Add(k) {
			if err := b.grow(); err != nil {
				return err
			}
		}
	}
	b.done()
	it.set = set
	return nil
}

func (it *setFilterIter[T, K]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.set == nil {
		if err := it.load(ctx); err != nil {
			return zero, false, err
		}
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		k := it.key(val)
		if it.keep {
			if it.set.Remove(k) {
				return val, true, nil
			}
		} else if it.set.Add(k) {
			return val, true, nil
		}
	}
}

func (it *setFilterIter[T, K]) Close() error { return it.source.Close() }
