package lookup

import (
	"slices"
	"testing"

	"github.com/kbukum/seqkit/comparer"
	"github.com/kbukum/seqkit/errors"
)

func TestLookup_Scenario(t *testing.T) {
	b := NewBuilder[int, string](comparer.Default[int]())
	b.Add(1, "a")
	b.Add(2, "b")
	b.Add(1, "c")
	l := b.Lookup()

	if got := l.Get(1); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("got %v, want [a c]", got)
	}
	if got := l.Get(3); got == nil || len(got) != 0 {
		t.Errorf("absent key should yield an empty, non-nil group, got %#v", got)
	}
	if got := l.Keys(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got keys %v, want [1 2]", got)
	}
	if l.Len() != 2 {
		t.Errorf("got len %d, want 2", l.Len())
	}
	if !l.Contains(2) || l.Contains(3) {
		t.Error("Contains mismatch")
	}
}

func TestLookup_GroupingsOrder(t *testing.T) {
	b := NewBuilder[string, int](comparer.Default[string]())
	for i, k := range []string{"z", "a", "z", "m", "a"} {
		b.Add(k, i)
	}
	l := b.Lookup()

	var keys []string
	for g := range l.All() {
		keys = append(keys, g.Key)
	}
	if !slices.Equal(keys, []string{"z", "a", "m"}) {
		t.Errorf("got %v, want first-insertion order [z a m]", keys)
	}
	gs := l.Groupings()
	if !slices.Equal(gs[0].Values, []int{0, 2}) || !slices.Equal(gs[1].Values, []int{1, 4}) {
		t.Errorf("unexpected groups %v", gs)
	}
}

func TestLookup_AddKeyEmptyGroup(t *testing.T) {
	b := NewBuilder[int, int](comparer.Default[int]())
	b.AddKey(5)
	b.Add(5, 1)
	b.AddKey(6)
	l := b.Lookup()
	if !slices.Equal(l.Get(5), []int{1}) {
		t.Errorf("got %v, want [1]", l.Get(5))
	}
	if !l.Contains(6) || len(l.Get(6)) != 0 {
		t.Error("expected key 6 with empty group")
	}
}

func TestLookup_CustomComparer(t *testing.T) {
	b := NewBuilder[string, int](comparer.FoldString())
	b.Add("Go", 1)
	b.Add("GO", 2)
	b.Add("go", 3)
	l := b.Lookup()
	if l.Len() != 1 {
		t.Fatalf("expected one case-folded key, got %d", l.Len())
	}
	if l.Keys()[0] != "Go" {
		t.Errorf("first inserted spelling should be kept, got %q", l.Keys()[0])
	}
}

// collidingEq forces every key into one bucket to exercise chain walking.
func collidingEq() comparer.Equality[int] {
	return comparer.EqualityFunc[int]{
		EqualFn: func(a, b int) bool { return a == b },
		HashFn:  func(int) uint64 { return 7 },
	}
}

func TestSet_Collisions(t *testing.T) {
	s := NewSet(collidingEq())
	for _, v := range []int{3, 1, 3, 2, 1} {
		s.Add(v)
	}
	if !slices.Equal(s.Items(), []int{3, 1, 2}) {
		t.Errorf("got %v, want [3 1 2]", s.Items())
	}
	if !s.Remove(1) || s.Remove(1) {
		t.Error("Remove should succeed once")
	}
	if s.Contains(1) || !s.Contains(2) {
		t.Error("Contains mismatch after remove")
	}
	if s.Len() != 2 {
		t.Errorf("got len %d, want 2", s.Len())
	}
	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	if !slices.Equal(got, []int{3, 2}) {
		t.Errorf("got %v, want [3 2]", got)
	}
	s.Add(1)
	if !slices.Equal(s.Items(), []int{3, 2, 1}) {
		t.Errorf("re-added element should go last, got %v", s.Items())
	}
}

func TestSet_AddUnique(t *testing.T) {
	s := NewSet(comparer.Default[string]())
	if err := s.AddUnique("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddUnique("a"); !errors.IsDuplicateKey(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}
}

func TestDictionary_AddDuplicate(t *testing.T) {
	d := NewDictionary[int, string](comparer.Default[int]())
	if err := d.Add(1, "a"); err != nil {
		t.Fatal(err)
	}
	err := d.Add(1, "b")
	if !errors.IsDuplicateKey(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if v, _ := d.Get(1); v != "a" {
		t.Errorf("duplicate Add must not overwrite, got %q", v)
	}
}

func TestDictionary_SetGet(t *testing.T) {
	d := NewDictionary[string, int](comparer.Default[string]())
	d.Set("b", 1)
	d.Set("a", 2)
	d.Set("b", 3)
	if v, ok := d.Get("b"); !ok || v != 3 {
		t.Errorf("got (%d, %v), want (3, true)", v, ok)
	}
	if _, ok := d.Get("c"); ok {
		t.Error("expected missing key")
	}
	if !d.ContainsKey("a") || d.Len() != 2 {
		t.Error("ContainsKey/Len mismatch")
	}
	if !slices.Equal(d.Keys(), []string{"b", "a"}) {
		t.Errorf("got keys %v, want [b a]", d.Keys())
	}
	var vals []int
	for _, v := range d.All() {
		vals = append(vals, v)
	}
	if !slices.Equal(vals, []int{3, 2}) {
		t.Errorf("got %v, want [3 2]", vals)
	}
}
