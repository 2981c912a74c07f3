// Package lookup provides the comparer-keyed collections that back seqkit's
// buffering operators: Set (distinct and set algebra), Dictionary
// (ToDictionary) and Lookup (GroupBy, ToLookup, Join).
//
// All three keep keys in first-insertion order and use a comparer.Equality
// instead of Go's built-in map semantics, so keys need not be comparable.
//
// # Usage
//
//	b := lookup.NewBuilder[int, string](comparer.Default[int]())
//	b.Add(1, "a")
//	b.Add(2, "b")
//	b.Add(1, "c")
//	l := b.Lookup()
//	l.Get(1) // ["a" "c"]
//	l.Get(3) // []
package lookup
