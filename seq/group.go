package seq

import (
	"context"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/lookup"
)

// GroupBy groups values by key. Groups are yielded in the order their keys
// first occur and hold their values in source order. The source is read in
// full on the first pull.
func GroupBy[T any, K comparable](s *Seq[T], key func(T) K) *Seq[lookup.Grouping[K, T]] {
	return GroupByElementWith(s, key, identity[T], comparer.Default[K]())
}

// GroupByWith is GroupBy under a custom key equality.
func GroupByWith[T, K any](s *Seq[T], key func(T) K, eq comparer.Equality[K]) *Seq[lookup.Grouping[K, T]] {
	return GroupByElementWith(s, key, identity[T], eq)
}

// GroupByElement groups the projections elem(v) by key(v).
func GroupByElement[T any, K comparable, V any](s *Seq[T], key func(T) K, elem func(T) V) *Seq[lookup.Grouping[K, V]] {
	return GroupByElementWith(s, key, elem, comparer.Default[K]())
}

// GroupByElementWith is GroupByElement under a custom key equality.
func GroupByElementWith[T, K, V any](s *Seq[T], key func(T) K, elem func(T) V, eq comparer.Equality[K]) *Seq[lookup.Grouping[K, V]] {
	if err := checkKeyed(key, eq); err != nil {
		return Fail[lookup.Grouping[K, V]](err)
	}
	if elem == nil {
		return Fail[lookup.Grouping[K, V]](errors.MissingArgument("elementSelector"))
	}
	return &Seq[lookup.Grouping[K, V]]{
		create: func(ctx context.Context) Iterator[lookup.Grouping[K, V]] {
			return &groupIter[T, K, V]{source: s.create(ctx), key: key, elem: elem, eq: eq}
		},
	}
}

// GroupByResult groups values by key and maps every group through result.
func GroupByResult[T any, K comparable, R any](s *Seq[T], key func(T) K, result func(K, []T) R) *Seq[R] {
	return GroupByResultWith(s, key, result, comparer.Default[K]())
}

// GroupByResultWith is GroupByResult under a custom key equality.
func GroupByResultWith[T, K, R any](s *Seq[T], key func(T) K, result func(K, []T) R, eq comparer.Equality[K]) *Seq[R] {
	if result == nil {
		return Fail[R](errors.MissingArgument("resultSelector"))
	}
	return Select(GroupByWith(s, key, eq), func(g lookup.Grouping[K, T]) R { return result(g.Key, g.Values) })
}

// ToLookup reads s in full and groups its values by key.
func ToLookup[T any, K comparable](ctx context.Context, s *Seq[T], key func(T) K) (*lookup.Lookup[K, T], error) {
	return ToLookupElementWith(ctx, s, key, identity[T], comparer.Default[K]())
}

// ToLookupWith is ToLookup under a custom key equality.
func ToLookupWith[T, K any](ctx context.Context, s *Seq[T], key func(T) K, eq comparer.Equality[K]) (*lookup.Lookup[K, T], error) {
	return ToLookupElementWith(ctx, s, key, identity[T], eq)
}

// ToLookupElement groups the projections elem(v) by key(v).
func ToLookupElement[T any, K comparable, V any](ctx context.Context, s *Seq[T], key func(T) K, elem func(T) V) (*lookup.Lookup[K, V], error) {
	return ToLookupElementWith(ctx, s, key, elem, comparer.Default[K]())
}

// ToLookupElementWith is ToLookupElement under a custom key equality.
// Duplicate keys never fail; they grow the group.
func ToLookupElementWith[T, K, V any](ctx context.Context, s *Seq[T], key func(T) K, elem func(T) V, eq comparer.Equality[K]) (*lookup.Lookup[K, V], error) {
	if err := checkKeyed(key, eq); err != nil {
		return nil, err
	}
	if elem == nil {
		return nil, errors.MissingArgument("elementSelector")
	}
	it := s.create(ctx)
	defer it.Close()
	return buildLookup(ctx, it, key, elem, eq, "ToLookup")
}

// Join correlates outer and inner values with equal keys and yields
// result(o, i) for every matching pair, in outer order and then inner order.
// inner is read in full on the first pull.
func Join[O, I any, K comparable, R any](outer *Seq[O], inner *Seq[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) *Seq[R] {
	return JoinWith(outer, inner, outerKey, innerKey, result, comparer.Default[K]())
}

// JoinWith is Join under a custom key equality.
func JoinWith[O, I, K, R any](outer *Seq[O], inner *Seq[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq comparer.Equality[K]) *Seq[R] {
	if err := checkJoin(outerKey, innerKey, eq); err != nil {
		return Fail[R](err)
	}
	if result == nil {
		return Fail[R](errors.MissingArgument("resultSelector"))
	}
	return SelectManyWith(
		groupJoinSeq(outer, inner, outerKey, innerKey, eq, "Join"),
		func(p Pair[O, []I]) *Seq[I] { return FromSlice(p.Second) },
		func(p Pair[O, []I], i I) R { return result(p.First, i) },
	)
}

// GroupJoin yields result(o, matches) for every outer value, where matches
// holds the inner values with an equal key (possibly none).
func GroupJoin[O, I any, K comparable, R any](outer *Seq[O], inner *Seq[I], outerKey func(O) K, innerKey func(I) K, result func(O, []I) R) *Seq[R] {
	return GroupJoinWith(outer, inner, outerKey, innerKey, result, comparer.Default[K]())
}

// GroupJoinWith is GroupJoin under a custom key equality.
func GroupJoinWith[O, I, K, R any](outer *Seq[O], inner *Seq[I], outerKey func(O) K, innerKey func(I) K, result func(O, []I) R, eq comparer.Equality[K]) *Seq[R] {
	if err := checkJoin(outerKey, innerKey, eq); err != nil {
		return Fail[R](err)
	}
	if result == nil {
		return Fail[R](errors.MissingArgument("resultSelector"))
	}
	return Select(groupJoinSeq(outer, inner, outerKey, innerKey, eq, "GroupJoin"),
		func(p Pair[O, []I]) R { return result(p.First, p.Second) })
}

// CountBy yields each distinct key with the number of values mapped to it,
// in key first-occurrence order.
func CountBy[T any, K comparable](s *Seq[T], key func(T) K) *Seq[KeyValue[K, int]] {
	return CountByWith(s, key, comparer.Default[K]())
}

// CountByWith is CountBy under a custom key equality.
func CountByWith[T, K any](s *Seq[T], key func(T) K, eq comparer.Equality[K]) *Seq[KeyValue[K, int]] {
	return AggregateByWith(s, key, func(K) int { return 0 }, func(n int, _ T) int { return n + 1 }, eq)
}

// AggregateBy folds the values of each key, starting from seed(key), and
// yields the accumulators in key first-occurrence order.
func AggregateBy[T any, K comparable, A any](s *Seq[T], key func(T) K, seed func(K) A, fn func(A, T) A) *Seq[KeyValue[K, A]] {
	return AggregateByWith(s, key, seed, fn, comparer.Default[K]())
}

// AggregateByWith is AggregateBy under a custom key equality.
func AggregateByWith[T, K, A any](s *Seq[T], key func(T) K, seed func(K) A, fn func(A, T) A, eq comparer.Equality[K]) *Seq[KeyValue[K, A]] {
	if err := checkKeyed(key, eq); err != nil {
		return Fail[KeyValue[K, A]](err)
	}
	if seed == nil || fn == nil {
		return Fail[KeyValue[K, A]](errors.MissingArgument("func"))
	}
	return &Seq[KeyValue[K, A]]{
		create: func(ctx context.Context) Iterator[KeyValue[K, A]] {
			return &aggregateByIter[T, K, A]{source: s.create(ctx), key: key, seed: seed, fn: fn, eq: eq}
		},
	}
}

func checkKeyed[T, K any](key func(T) K, eq comparer.Equality[K]) error {
	if key == nil {
		return errors.MissingArgument("keySelector")
	}
	if eq == nil {
		return errors.MissingArgument("comparer")
	}
	return nil
}

func checkJoin[O, I, K any](outerKey func(O) K, innerKey func(I) K, eq comparer.Equality[K]) error {
	if outerKey == nil {
		return errors.MissingArgument("outerKeySelector")
	}
	if innerKey == nil {
		return errors.MissingArgument("innerKeySelector")
	}
	if eq == nil {
		return errors.MissingArgument("comparer")
	}
	return nil
}

// groupJoinSeq pairs every outer value with its inner matches.
func groupJoinSeq[O, I, K any](outer *Seq[O], inner *Seq[I], outerKey func(O) K, innerKey func(I) K, eq comparer.Equality[K], op string) *Seq[Pair[O, []I]] {
	return &Seq[Pair[O, []I]]{
		create: func(ctx context.Context) Iterator[Pair[O, []I]] {
			return &joinIter[O, I, K]{source: outer.create(ctx), inner: inner, outerKey: outerKey, innerKey: innerKey, eq: eq, op: op}
		},
	}
}

func buildLookup[T, K, V any](ctx context.Context, it Iterator[T], key func(T) K, elem func(T) V, eq comparer.Equality[K], op string) (*lookup.Lookup[K, V], error) {
	b := newBudget(ctx, op)
	builder := lookup.NewBuilder[K, V](eq)
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := b.grow(); err != nil {
			return nil, err
		}
		builder.Add(key(val), elem(val))
	}
	b.done()
	return builder.Lookup(), nil
}

// --- Iterator implementations ---

type groupIter[T, K, V any] struct {
	source Iterator[T]
	key    func(T) K
	elem   func(T) V
	eq     comparer.Equality[K]
	groups []lookup.Grouping[K, V]
	loaded bool
}

func (it *groupIter[T, K, V]) Next(ctx context.Context) (lookup.Grouping[K, V], bool, error) {
	var zero lookup.Grouping[K, V]
	if !it.loaded {
		l, err := buildLookup(ctx, it.source, it.key, it.elem, it.eq, "GroupBy")
		if err != nil {
			return zero, false, err
		}
		it.groups = l.Groupings()
		it.loaded = true
	}
	if len(it.groups) == 0 {
		return zero, false, nil
	}
	g := it.groups[0]
	it.groups = it.groups[1:]
	return g, true, nil
}

func (it *groupIter[T, K, V]) Close() error { return it.source.Close() }

type joinIter[O, I, K any] struct {
	source   Iterator[O]
	inner    *Seq[I]
	outerKey func(O) K
	innerKey func(I) K
	eq       comparer.Equality[K]
	op       string
	table    *lookup.Lookup[K, I]
}

func (it *joinIter[O, I, K]) Next(ctx context.Context) (Pair[O, []I], bool, error) {
	var zero Pair[O, []I]
	if it.table == nil {
		src := it.inner.create(ctx)
		table, err := buildLookup(ctx, src, it.innerKey, identity[I], it.eq, it.op)
		_ = src.Close()
		if err != nil {
			return zero, false, err
		}
		it.table = table
	}
	o, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	return Pair[O, []I]{First: o, Second: it.table.Get(it.outerKey(o))}, true, nil
}

func (it *joinIter[O, I, K]) Close() error { return it.source.Close() }

type aggregateByIter[T, K, A any] struct {
	source Iterator[T]
	key    func(T) K
	seed   func(K) A
	fn     func(A, T) A
	eq     comparer.Equality[K]
	out    []KeyValue[K, A]
	loaded bool
}

func (it *aggregateByIter[T, K, A]) load(ctx context.Context) error {
	b := newBudget(ctx, "AggregateBy")
	acc := lookup.NewDictionary[K, A](it.eq)
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		k := it.key(val)
		cur, found := acc.Get(k)
		if !found {
			if err := b.grow(); err != nil {
				return err
			}
			cur = it.seed(k)
		}
		acc.Set(k, it.fn(cur, val))
	}
	b.done()
	for k, v := range acc.All() {
		it.out = append(it.out, KeyValue[K, A]{Key: k, Value: v})
	}
	return nil
}

func (it *aggregateByIter[T, K, A]) Next(ctx context.Context) (KeyValue[K, A], bool, error) {
	var zero KeyValue[K, A]
	if !it.loaded {
		if err := it.load(ctx); err != nil {
			return zero, false, err
		}
		it.loaded = true
	}
	if len(it.out) == 0 {
		return zero, false, nil
	}
	kv := it.out[0]
	it.out = it.out[1:]
	return kv, true, nil
}

func (it *aggregateByIter[T, K, A]) Close() error { return it.source.Close() }
