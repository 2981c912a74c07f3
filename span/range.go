package span

import (
	"strconv"
	"strings"

	"github.com/kbukum/seqkit/errors"
)

// Range is an immutable half-open interval [Start, End) of Index values.
type Range struct {
	start Index
	end   Index
}

// NewRange creates the range start..end.
func NewRange(start, end Index) Range {
	return Range{start: start, end: end}
}

// StartAt creates the range start..^0.
func StartAt(start Index) Range {
	return Range{start: start, end: FromEnd(0)}
}

// EndAt creates the range 0..end.
func EndAt(end Index) Range {
	return Range{start: FromStart(0), end: end}
}

// All creates the range covering the entire span, 0..^0.
func All() Range {
	return Range{start: FromStart(0), end: FromEnd(0)}
}

// Start returns the inclusive start index.
func (r Range) Start() Index { return r.start }

// End returns the exclusive end index.
func (r Range) End() Index { return r.end }

// HasFromEnd reports whether either endpoint counts from the end, in which
// case the length of the sequence is required to resolve the range.
func (r Range) HasFromEnd() bool {
	return r.start.fromEnd || r.end.fromEnd
}

// Resolve converts the range to an offset and a length for a sequence of the
// given length. Spans that start after they end, or that reach outside
// [0, length], fail with an out-of-range error rather than being clamped.
func (r Range) Resolve(length int) (offset, count int, err error) {
	start := r.start.Offset(length)
	end := r.end.Offset(length)
	if start < 0 || start > length {
		return 0, 0, errors.IndexOutOfRange(r.start.String(), length).WithDetail("range", r.String())
	}
	if end < 0 || end > length {
		return 0, 0, errors.IndexOutOfRange(r.end.String(), length).WithDetail("range", r.String())
	}
	if start > end {
		return 0, 0, errors.IndexOutOfRange(r.String(), length)
	}
	return start, end - start, nil
}

// String formats the range as "start..end", e.g. "2..^1".
func (r Range) String() string {
	return r.start.String() + ".." + r.end.String()
}

// Parse reads a range written as "start..end" where either side may be empty
// (meaning 0 and ^0 respectively) and either side may carry a leading '^'.
func Parse(s string) (Range, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok {
		return Range{}, errors.InvalidArgument("range", "expected start..end, got "+strconv.Quote(s))
	}
	start, err := parseIndex(lo, FromStart(0))
	if err != nil {
		return Range{}, err
	}
	end, err := parseIndex(hi, FromEnd(0))
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end), nil
}

func parseIndex(s string, def Index) (Index, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	fromEnd := strings.HasPrefix(s, "^")
	n, err := strconv.Atoi(strings.TrimPrefix(s, "^"))
	if err != nil {
		return Index{}, errors.InvalidArgument("range", "index is not an integer: "+strconv.Quote(s)).WithCause(err)
	}
	return NewIndex(n, fromEnd)
}
