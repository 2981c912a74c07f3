// Package numeric describes the numeric domains seqkit can aggregate over.
//
// A Kind bundles the operations the aggregation algorithms need (zero
// accumulator, add, total, mean, compare) so that Sum and Average are written
// once and instantiated per domain. Go number types sum through Of and
// average through Mean; Float32 and Decimal cover the wide float32 and exact
// decimal domains.
package numeric

import (
	"cmp"
	"fmt"

	"github.com/shopspring/decimal"
)

// Integer is the set of Go integer types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is the set of Go floating-point types.
type Float interface {
	~float32 | ~float64
}

// Number is the set of Go integer and floating-point types.
type Number interface {
	Integer | Float
}

// Kind is the numeric capability for values of type N accumulated in A,
// whose mean is reported as R.
type Kind[N, A, R any] struct {
	// Name identifies the domain in errors and logs.
	Name string
	// Zero is the empty accumulator.
	Zero A
	// Add folds v into acc. It returns false when the result overflows.
	Add func(acc A, v N) (A, bool)
	// Total converts an accumulator back to the value domain.
	Total func(acc A) N
	// Mean divides an accumulator by a positive count.
	Mean func(acc A, count int64) R
	// Compare orders two values.
	Compare func(a, b N) int
}

// Of returns the kind of a Go number type. Sums accumulate in N and report
// overflow for integers; means are float64.
func Of[N Number]() Kind[N, N, float64] {
	var zero N
	return Kind[N, N, float64]{
		Name: fmt.Sprintf("%T", zero),
		Add: func(acc N, v N) (N, bool) {
			s := acc + v
			// Only integer addition can wrap; for floats neither branch holds.
			if (v > 0 && s < acc) || (v < 0 && s > acc) {
				return acc, false
			}
			return s, true
		},
		Total: func(acc N) N { return acc },
		Mean: func(acc N, count int64) float64 {
			return float64(acc) / float64(count)
		},
		Compare: cmp.Compare[N],
	}
}

// Wide is the accumulator of Mean. Signed integers add in I, unsigned
// integers in U and floats in F.
type Wide struct {
	I int64
	U uint64
	F float64
}

// Mean returns the kind Average uses for a Go number type. Values accumulate
// in 64 bits whatever the width of N, so only a sum that leaves int64 or
// uint64 overflows.
func Mean[N Number]() Kind[N, Wide, float64] {
	var zero N
	k := Kind[N, Wide, float64]{
		Name:    fmt.Sprintf("%T", zero),
		Compare: cmp.Compare[N],
	}
	half := 0.5
	switch {
	case N(half) != 0:
		k.Add = func(acc Wide, v N) (Wide, bool) {
			acc.F += float64(v)
			return acc, true
		}
		k.Total = func(acc Wide) N { return N(acc.F) }
		k.Mean = func(acc Wide, count int64) float64 { return acc.F / float64(count) }
	case zero-1 < zero:
		k.Add = func(acc Wide, v N) (Wide, bool) {
			w := int64(v)
			s := acc.I + w
			if (w > 0 && s < acc.I) || (w < 0 && s > acc.I) {
				return acc, false
			}
			acc.I = s
			return acc, true
		}
		k.Total = func(acc Wide) N { return N(acc.I) }
		k.Mean = func(acc Wide, count int64) float64 { return float64(acc.I) / float64(count) }
	default:
		k.Add = func(acc Wide, v N) (Wide, bool) {
			s := acc.U + uint64(v)
			if s < acc.U {
				return acc, false
			}
			acc.U = s
			return acc, true
		}
		k.Total = func(acc Wide) N { return N(acc.U) }
		k.Mean = func(acc Wide, count int64) float64 { return float64(acc.U) / float64(count) }
	}
	return k
}

// Float32 returns the float32 kind, which accumulates in float64 and rounds
// only the final sum or mean back to float32.
func Float32() Kind[float32, float64, float32] {
	return Kind[float32, float64, float32]{
		Name:    "float32",
		Add:     func(acc float64, v float32) (float64, bool) { return acc + float64(v), true },
		Total:   func(acc float64) float32 { return float32(acc) },
		Mean:    func(acc float64, count int64) float32 { return float32(acc / float64(count)) },
		Compare: cmp.Compare[float32],
	}
}

// Decimal returns the exact decimal kind. Means are rounded to
// decimal.DivisionPrecision digits after the point.
func Decimal() Kind[decimal.Decimal, decimal.Decimal, decimal.Decimal] {
	return Kind[decimal.Decimal, decimal.Decimal, decimal.Decimal]{
		Name: "decimal",
		Zero: decimal.Zero,
		Add: func(acc, v decimal.Decimal) (decimal.Decimal, bool) {
			return acc.Add(v), true
		},
		Total: func(acc decimal.Decimal) decimal.Decimal { return acc },
		Mean: func(acc decimal.Decimal, count int64) decimal.Decimal {
			return acc.Div(decimal.NewFromInt(count))
		},
		Compare: func(a, b decimal.Decimal) int { return a.Cmp(b) },
	}
}
