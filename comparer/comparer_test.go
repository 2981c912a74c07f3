package comparer

import (
	"math"
	"testing"
)

func TestDefault_EqualHash(t *testing.T) {
	eq := Default[string]()
	if !eq.Equal("a", "a") || eq.Equal("a", "b") {
		t.Error("default equality should match ==")
	}
	if eq.Hash("abc") != eq.Hash("abc") {
		t.Error("equal values must hash equal")
	}
}

func TestDefault_Struct(t *testing.T) {
	type point struct{ X, Y int }
	eq := Default[point]()
	if eq.Hash(point{1, 2}) != eq.Hash(point{1, 2}) {
		t.Error("equal structs must hash equal")
	}
	if !eq.Equal(point{1, 2}, point{1, 2}) {
		t.Error("expected structs to be equal")
	}
}

func TestNatural_Compare(t *testing.T) {
	o := Natural[int]()
	if o.Compare(1, 2) >= 0 || o.Compare(2, 1) <= 0 || o.Compare(3, 3) != 0 {
		t.Error("natural ordering mismatch")
	}
	f := Natural[float64]()
	if f.Compare(math.NaN(), math.Inf(-1)) >= 0 {
		t.Error("NaN should sort before -Inf")
	}
}

func TestReverse(t *testing.T) {
	o := Reverse(Natural[int]())
	if o.Compare(1, 2) <= 0 {
		t.Error("reversed ordering should put 2 before 1")
	}
}

func TestBy_ProjectedKey(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}
	eq := By(func(u user) int { return u.ID })
	a, b := user{1, "a"}, user{1, "b"}
	if !eq.Equal(a, b) {
		t.Error("users with the same ID should be equal")
	}
	if eq.Hash(a) != eq.Hash(b) {
		t.Error("users with the same ID must hash equal")
	}
}

func TestFoldString(t *testing.T) {
	eq := FoldString()
	tests := []struct {
		a, b string
		want bool
	}{
		{"Go", "GO", true},
		{"go", "gO", true},
		{"go", "goo", false},
		{"straße", "STRASSE", false},
	}
	for _, tc := range tests {
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			if got := eq.Equal(tc.a, tc.b); got != tc.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if tc.want && eq.Hash(tc.a) != eq.Hash(tc.b) {
				t.Errorf("Hash(%q) != Hash(%q)", tc.a, tc.b)
			}
		})
	}
}

func TestFoldStringOrdering(t *testing.T) {
	o := FoldStringOrdering()
	if o.Compare("apple", "Banana") >= 0 {
		t.Error("apple should sort before Banana ignoring case")
	}
	if o.Compare("ABC", "abc") != 0 {
		t.Error("case-only differences should tie")
	}
}
