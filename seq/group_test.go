package seq

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/kbukum/seqkit/comparer"
	apperrors "github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/lookup"
)

type person struct {
	Name string
	City string
	Age  int
}

var people = []person{
	{"ann", "oslo", 31},
	{"bob", "rome", 25},
	{"cid", "oslo", 25},
	{"dan", "lima", 40},
	{"eve", "rome", 31},
}

func TestGroupBy(t *testing.T) {
	groups := collect(t, GroupBy(FromSlice(people), func(p person) string { return p.City }))
	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	if !slices.Equal(keys, []string{"oslo", "rome", "lima"}) {
		t.Errorf("got keys %v, want [oslo rome lima]", keys)
	}
	if len(groups[0].Values) != 2 || groups[0].Values[0].Name != "ann" || groups[0].Values[1].Name != "cid" {
		t.Errorf("oslo group = %v, want ann then cid", groups[0].Values)
	}
}

func TestGroupByElement_SelectorOncePerElement(t *testing.T) {
	calls := 0
	s := GroupByElement(FromSlice(people), func(p person) int { return p.Age }, func(p person) string {
		calls++
		return p.Name
	})
	groups := collect(t, s)
	if calls != len(people) {
		t.Errorf("element selector called %d times, want %d", calls, len(people))
	}
	if groups[0].Key != 31 || !slices.Equal(groups[0].Values, []string{"ann", "eve"}) {
		t.Errorf("first group = %v, want 31:[ann eve]", groups[0])
	}
}

func TestGroupByWith(t *testing.T) {
	groups := collect(t, GroupByWith(FromSlice([]string{"a", "B", "A", "b"}), identity[string], comparer.FoldString()))
	if len(groups) != 2 || groups[0].Key != "a" || !slices.Equal(groups[1].Values, []string{"B", "b"}) {
		t.Errorf("got %v", groups)
	}
}

func TestGroupByResult(t *testing.T) {
	got := collect(t, GroupByResult(FromSlice(people), func(p person) string { return p.City },
		func(city string, ps []person) string { return city + "=" + string(rune('0'+len(ps))) }))
	want := []string{"oslo=2", "rome=2", "lima=1"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToLookup(t *testing.T) {
	pairs := FromSlice([]KeyValue[int, string]{{1, "a"}, {2, "b"}, {1, "c"}})
	l, err := ToLookupElement(context.Background(), pairs,
		func(kv KeyValue[int, string]) int { return kv.Key },
		func(kv KeyValue[int, string]) string { return kv.Value })
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(l.Get(1), []string{"a", "c"}) {
		t.Errorf("lookup[1] = %v, want [a c]", l.Get(1))
	}
	if got := l.Get(3); got == nil || len(got) != 0 {
		t.Errorf("lookup[3] = %#v, want empty", got)
	}
	if !slices.Equal(l.Keys(), []int{1, 2}) {
		t.Errorf("keys = %v, want [1 2]", l.Keys())
	}
}

func TestToLookup_DuplicatesGrowGroup(t *testing.T) {
	pairs := FromSlice([]KeyValue[int, string]{{1, "a"}, {1, "b"}})
	l, err := ToLookup(context.Background(), pairs, func(kv KeyValue[int, string]) int { return kv.Key })
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Get(1)) != 2 {
		t.Errorf("got %v, want two values under key 1", l.Get(1))
	}
}

func TestJoin(t *testing.T) {
	type city struct {
		Name    string
		Country string
	}
	cities := FromSlice([]city{{"oslo", "NO"}, {"rome", "IT"}, {"oslo", "NO-dup"}})
	got := collect(t, Join(FromSlice(people), cities,
		func(p person) string { return p.City },
		func(c city) string { return c.Name },
		func(p person, c city) string { return p.Name + "@" + c.Country }))
	want := []string{"ann@NO", "ann@NO-dup", "bob@IT", "cid@NO", "cid@NO-dup", "eve@IT"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroupJoin(t *testing.T) {
	got := collect(t, GroupJoin(FromSlice([]string{"oslo", "paris"}), FromSlice(people),
		func(c string) string { return c },
		func(p person) string { return p.City },
		func(c string, ps []person) string {
			names := make([]string, len(ps))
			for i, p := range ps {
				names[i] = p.Name
			}
			return c + ":" + strings.Join(names, "+")
		}))
	want := []string{"oslo:ann+cid", "paris:"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCountBy(t *testing.T) {
	got := collect(t, CountBy(FromSlice(people), func(p person) int { return p.Age }))
	want := []KeyValue[int, int]{{31, 2}, {25, 2}, {40, 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAggregateBy(t *testing.T) {
	got := collect(t, AggregateBy(FromSlice(people),
		func(p person) string { return p.City },
		func(string) int { return 0 },
		func(acc int, p person) int { return acc + p.Age }))
	want := []KeyValue[string, int]{{"oslo", 56}, {"rome", 56}, {"lima", 40}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroupBy_NilKey(t *testing.T) {
	_, err := ToSlice(context.Background(), GroupBy[int, int](Range(0, 3), nil))
	if !apperrors.IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
	var l *lookup.Lookup[int, int]
	l, err = ToLookup[int, int](context.Background(), Range(0, 3), nil)
	if l != nil || !apperrors.IsArgument(err) {
		t.Errorf("expected argument error, got (%v, %v)", l, err)
	}
}
