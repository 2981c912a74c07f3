// Package seq provides composable, lazily-evaluated sequence operators.
//
// A *Seq[T] is an immutable description. No work happens until values are
// pulled via Iter, ToSlice, ForEach or another terminal; each enumeration
// creates fresh iterator state, so sequences built from re-iterable sources
// (FromSlice, Range, Repeat, FromFunc) can be enumerated any number of times.
// Sequences built with From over a single Iterator are single-pass.
//
// Operators are free functions taking the sequence as first argument.
// Invalid arguments never fail at composition time: the returned sequence
// reports an argument error on its first pull.
//
// # Operators
//
// Streaming (constant memory):
//
//   - Select, SelectIndexed, SelectErr, Where, WhereIndexed, SelectMany
//   - Take, Skip, TakeWhile, SkipWhile, TakeLast, SkipLast, Chunk
//   - Concat, Append, Prepend, Zip, Zip3, Enumerate, Cast, OfType, Tap
//   - Distinct, Union (a seen-set grows with each distinct key)
//
// Buffering (read the source, or an operand, in full on the first pull):
//
//   - OrderBy, ThenBy and their variants, Reverse
//   - GroupBy, Join, GroupJoin, CountBy, AggregateBy
//   - Intersect, Except (second operand only)
//   - TakeRange with a from-end endpoint on a source of unknown length
//
// Buffering stages honour the Limits carried by the context (WithLimits)
// and log at debug level through the "seq" logger when they materialize.
//
// Keyed and ordered operators use the natural equality or ordering of the
// key type; every one has a With variant taking a comparer.Equality or
// comparer.Ordering.
//
// # Usage
//
//	words := seq.FromSlice([]string{"b", "a", "c", "a"})
//	top := seq.Take(seq.OrderByDescending(seq.CountBy(words, strings.ToLower),
//	    func(kv seq.KeyValue[string, int]) int { return kv.Value }).Seq, 2)
//	counts, err := seq.ToSlice(ctx, top)
//
// Range loops:
//
//	for v, err := range seq.Where(src, isEven).All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(v)
//	}
package seq
