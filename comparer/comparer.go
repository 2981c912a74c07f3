// Package comparer defines the pluggable equality and ordering capabilities
// injected into every keyed or ordered seqkit operator.
package comparer

import (
	"cmp"
	"hash/maphash"
	"strings"
)

// Equality supplies equality and hashing for a key type.
// Keys that are Equal must produce the same Hash.
type Equality[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

// Ordering supplies a total order for a key type. Compare returns a negative
// number when a sorts before b, zero when they tie and a positive number otherwise.
type Ordering[T any] interface {
	Compare(a, b T) int
}

// seed is shared by every default comparer so hashes are stable within a process.
var seed = maphash.MakeSeed()

type defaultEquality[T comparable] struct{}

func (defaultEquality[T]) Equal(a, b T) bool { return a == b }
func (defaultEquality[T]) Hash(v T) uint64   { return maphash.Comparable(seed, v) }

// Default returns the natural equality of a comparable type (== and the runtime hash).
func Default[T comparable]() Equality[T] {
	return defaultEquality[T]{}
}

type natural[T cmp.Ordered] struct{}

func (natural[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

// Natural returns the natural ordering of an ordered type. NaN sorts before
// every other floating-point value.
func Natural[T cmp.Ordered]() Ordering[T] {
	return natural[T]{}
}

// EqualityFunc adapts a pair of functions to Equality.
type EqualityFunc[T any] struct {
	EqualFn func(a, b T) bool
	HashFn  func(v T) uint64
}

func (f EqualityFunc[T]) Equal(a, b T) bool { return f.EqualFn(a, b) }
func (f EqualityFunc[T]) Hash(v T) uint64   { return f.HashFn(v) }

// OrderingFunc adapts a comparison function to Ordering.
type OrderingFunc[T any] func(a, b T) int

func (f OrderingFunc[T]) Compare(a, b T) int { return f(a, b) }

// Reverse inverts an ordering.
func Reverse[T any](o Ordering[T]) Ordering[T] {
	return OrderingFunc[T](func(a, b T) int { return o.Compare(b, a) })
}

// By derives an equality over T from the natural equality of a projected key.
func By[T any, K comparable](key func(T) K) Equality[T] {
	return EqualityFunc[T]{
		EqualFn: func(a, b T) bool { return key(a) == key(b) },
		HashFn:  func(v T) uint64 { return maphash.Comparable(seed, key(v)) },
	}
}

// FoldString compares strings case-insensitively under Unicode simple folding.
func FoldString() Equality[string] {
	return EqualityFunc[string]{
		EqualFn: strings.EqualFold,
		HashFn: func(v string) uint64 {
			return maphash.String(seed, foldKey(v))
		},
	}
}

// FoldStringOrdering orders strings case-insensitively. Strings that differ
// only in case tie.
func FoldStringOrdering() Ordering[string] {
	return OrderingFunc[string](func(a, b string) int {
		return strings.Compare(foldKey(a), foldKey(b))
	})
}

// foldKey maps a string to a canonical representative of its fold class.
// strings.EqualFold uses simple folding, which ToLower(ToUpper(s)) agrees
// with for the cases EqualFold considers equal.
func foldKey(s string) string {
	return strings.ToLower(strings.ToUpper(s))
}
