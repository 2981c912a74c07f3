package seq

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	apperrors "github.com/kbukum/seqkit/errors"
)

func TestFromSlice_ToSlice(t *testing.T) {
	got, err := ToSlice(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := ToSlice(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFromSlice_Reiterable(t *testing.T) {
	s := Select(FromSlice([]int{1, 2}), func(n int) int { return n * 10 })
	first := collect(t, s)
	second := collect(t, s)
	if !intSliceEqual(first, second) || !intSliceEqual(first, []int{10, 20}) {
		t.Errorf("got %v and %v, want [10 20] twice", first, second)
	}
}

func TestFrom_SinglePass(t *testing.T) {
	s := From[string](&sliceIter[string]{items: []string{"a", "b", "c"}})
	if got := collect(t, Take(s, 1)); !slices.Equal(got, []string{"a"}) {
		t.Errorf("got %v, want [a]", got)
	}
	if got := collect(t, s); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("second pass got %v, want [b c]", got)
	}
}

func TestFrom_SizedIterator(t *testing.T) {
	s := From[int](&sliceIter[int]{items: []int{1, 2, 3}})
	if n, ok := TryCount(s); !ok || n != 3 {
		t.Errorf("TryCount = (%d, %v), want (3, true)", n, ok)
	}
}

func TestFromFunc_Nil(t *testing.T) {
	_, err := ToSlice(context.Background(), FromFunc[int](nil))
	if !apperrors.IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
}

func TestFromIter(t *testing.T) {
	s := FromIter(slices.Values([]int{4, 5, 6}))
	if got := collect(t, Take(s, 2)); !intSliceEqual(got, []int{4, 5}) {
		t.Errorf("got %v, want [4 5]", got)
	}
	if got := collect(t, s); !intSliceEqual(got, []int{4, 5, 6}) {
		t.Errorf("got %v, want [4 5 6]", got)
	}
}

func TestFromMap(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	got := collect(t, FromMap(m))
	back := make(map[string]int)
	for _, kv := range got {
		back[kv.Key] = kv.Value
	}
	if !maps.Equal(back, m) {
		t.Errorf("got %v, want %v", back, m)
	}
	if n, ok := TryCount(FromMap(m)); !ok || n != 2 {
		t.Errorf("TryCount = (%d, %v), want (2, true)", n, ok)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name  string
		start int
		count int
		want  []int
	}{
		{"basic", 3, 4, []int{3, 4, 5, 6}},
		{"empty", 10, 0, []int{}},
		{"negative start", -2, 3, []int{-2, -1, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collect(t, Range(tc.start, tc.count))
			if !intSliceEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRange_InvalidCount(t *testing.T) {
	_, err := ToSlice(context.Background(), Range(0, -1))
	if !apperrors.IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
	_, err = ToSlice(context.Background(), Range(maxInt, 2))
	if !apperrors.IsArgument(err) {
		t.Errorf("expected argument error for overflow, got %v", err)
	}
}

func TestRepeat(t *testing.T) {
	got := collect(t, Repeat("x", 3))
	if !slices.Equal(got, []string{"x", "x", "x"}) {
		t.Errorf("got %v, want [x x x]", got)
	}
	if _, err := ToSlice(context.Background(), Repeat(1, -1)); !apperrors.IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
}

func TestDefer(t *testing.T) {
	calls := 0
	s := Defer(func() *Seq[int] {
		calls++
		return Range(0, calls)
	})
	if calls != 0 {
		t.Fatal("factory must not run at composition time")
	}
	if got := collect(t, s); !intSliceEqual(got, []int{0}) {
		t.Errorf("got %v, want [0]", got)
	}
	if got := collect(t, s); !intSliceEqual(got, []int{0, 1}) {
		t.Errorf("got %v, want [0 1]", got)
	}
}

func TestEmpty(t *testing.T) {
	if got := collect(t, Empty[int]()); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestAll_RangeLoop(t *testing.T) {
	var got []int
	for v, err := range FromSlice([]int{1, 2, 3}).All(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	if !intSliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestAll_YieldsError(t *testing.T) {
	boom := errors.New("boom")
	var seen error
	for _, err := range Fail[int](boom).All(context.Background()) {
		seen = err
	}
	if !errors.Is(seen, boom) {
		t.Errorf("got %v, want %v", seen, boom)
	}
}

func TestToSlice_NoPartialResult(t *testing.T) {
	s := SelectErr(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := ToSlice(context.Background(), s)
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("expected no partial result, got %v", got)
	}
}

func TestForEach(t *testing.T) {
	var sum int
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("got %d, want 6", sum)
	}
}

func TestDrain_SinkError(t *testing.T) {
	pulled := 0
	s := Tap(FromSlice([]int{1, 2, 3}), func(context.Context, int) error {
		pulled++
		return nil
	})
	err := Drain(s, func(_ context.Context, n int) error {
		if n == 2 {
			return errors.New("sink full")
		}
		return nil
	}).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if pulled != 2 {
		t.Errorf("expected 2 pulls, got %d", pulled)
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ToSlice(ctx, Range(0, 10))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestWithLimits_BufferLimit(t *testing.T) {
	ctx := WithLimits(context.Background(), Limits{MaxBuffer: 3})
	if LimitsFrom(ctx).MaxBuffer != 3 {
		t.Fatalf("LimitsFrom lost the limit")
	}
	tests := []struct {
		name string
		run  func() error
	}{
		{"ToSlice", func() error { _, err := ToSlice(ctx, Range(0, 4)); return err }},
		{"Reverse", func() error { _, err := ToSlice(ctx, Take(Reverse(Range(0, 10)), 1)); return err }},
		{"OrderBy", func() error { _, err := First(ctx, Order(Range(0, 10)).Seq); return err }},
		{"GroupBy", func() error {
			_, err := First(ctx, GroupBy(Range(0, 10), func(n int) int { return n % 2 }))
			return err
		}},
		{"Distinct", func() error { _, err := Count(ctx, Distinct(Where(Range(0, 10), func(int) bool { return true }))); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !apperrors.IsBufferLimit(err) {
				t.Errorf("expected buffer limit error, got %v", err)
			}
		})
	}
	if got, err := ToSlice(ctx, Range(0, 3)); err != nil || len(got) != 3 {
		t.Errorf("got (%v, %v), want three values within the limit", got, err)
	}
}

func TestDecorate_PreservesCount(t *testing.T) {
	wrapped := 0
	s := Decorate(FromSlice([]int{1, 2}), func(_ context.Context, it Iterator[int]) Iterator[int] {
		wrapped++
		return it
	})
	if n, ok := TryCount(s); !ok || n != 2 {
		t.Errorf("TryCount = (%d, %v), want (2, true)", n, ok)
	}
	collect(t, s)
	if wrapped != 1 {
		t.Errorf("expected wrap per enumeration, got %d", wrapped)
	}
}

// --- helpers ---

func collect[T any](t *testing.T, s *Seq[T]) []T {
	t.Helper()
	got, err := ToSlice(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
