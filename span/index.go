package span

import (
	"strconv"

	"github.com/kbukum/seqkit/errors"
)

// Index is a position in a sequence, counted from the start or from the end.
// The zero value is the first element (0 from start). FromEnd(0) denotes the
// position just past the last element.
type Index struct {
	value   int
	fromEnd bool
}

// NewIndex creates an Index. It fails with an argument error when value is negative.
func NewIndex(value int, fromEnd bool) (Index, error) {
	if value < 0 {
		return Index{}, errors.InvalidArgument("value", "index must not be negative")
	}
	return Index{value: value, fromEnd: fromEnd}, nil
}

// FromStart returns the index value positions from the start. It panics on a
// negative value; use NewIndex to handle untrusted input.
func FromStart(value int) Index {
	return mustIndex(value, false)
}

// FromEnd returns the index value positions back from the end (^value). It
// panics on a negative value.
func FromEnd(value int) Index {
	return mustIndex(value, true)
}

func mustIndex(value int, fromEnd bool) Index {
	idx, err := NewIndex(value, fromEnd)
	if err != nil {
		panic(err)
	}
	return idx
}

// Value returns the nonnegative magnitude regardless of direction.
func (i Index) Value() int { return i.value }

// IsFromEnd reports whether the index counts back from the end.
func (i Index) IsFromEnd() bool { return i.fromEnd }

// Offset converts the index to an absolute position for a sequence of the
// given length. The result is not bounds-checked.
func (i Index) Offset(length int) int {
	if i.fromEnd {
		return length - i.value
	}
	return i.value
}

// Resolve returns the absolute position of an element, failing unless it lies in [0, length).
func (i Index) Resolve(length int) (int, error) {
	off := i.Offset(length)
	if off < 0 || off >= length {
		return 0, errors.IndexOutOfRange(i.String(), length)
	}
	return off, nil
}

// String formats the index as "n" or "^n".
func (i Index) String() string {
	if i.fromEnd {
		return "^" + strconv.Itoa(i.value)
	}
	return strconv.Itoa(i.value)
}
