package seq

// Pair is an element of Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is an element of Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// KeyValue is a key with one associated value, as produced by CountBy,
// AggregateBy and FromMap.
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

// Indexed is an element tagged with its zero-based position, as produced by Enumerate.
type Indexed[T any] struct {
	Index int
	Value T
}
