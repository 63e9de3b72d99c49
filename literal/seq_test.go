package literal

import (
	"sort"
	"strings"
	"testing"
)

func factorsOf(s *Seq) []string {
	f := s.Factors()
	out := make([]string, len(f))
	for i, l := range f {
		out[i] = string(l)
	}
	sort.Strings(out)
	return out
}

func TestByteAndEpsilon(t *testing.T) {
	b := Byte('x')
	if !b.IsExact() || len(factorsOf(b)) != 1 || factorsOf(b)[0] != "x" {
		t.Errorf("Byte('x') = %v factors %v", b.IsExact(), factorsOf(b))
	}

	e := Epsilon()
	if !e.IsExact() {
		t.Error("Epsilon should be exact")
	}
	if e.Factors() != nil {
		t.Error("the empty string must not be usable as a factor")
	}
}

func TestClass(t *testing.T) {
	c := Class([]byte("abc"))
	got := factorsOf(c)
	if !c.IsExact() || strings.Join(got, "") != "abc" {
		t.Errorf("Class factors = %v", got)
	}
	if Class(nil).Factors() != nil {
		t.Error("empty class must carry no guarantee")
	}
	big := make([]byte, MaxFactors+1)
	for i := range big {
		big[i] = byte('a' + i%26)
	}
	if Class(big).Factors() != nil {
		t.Error("oversized class must degrade to inexact")
	}
}

func TestConcatCrossProduct(t *testing.T) {
	he := Concat(Byte('h'), Union(Byte('e'), Byte('a')))
	got := factorsOf(he)
	want := []string{"ha", "he"}
	if !he.IsExact() || len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("cross product = %v, want %v", got, want)
	}
}

// TestConcatKeepsStrongerSide verifies factor selection when one side has
// no guarantee: (a|b)* contributes nothing, the literal tail survives.
func TestConcatKeepsStrongerSide(t *testing.T) {
	tail := Concat(Byte('a'), Byte('b')) // exact {ab}
	s := Concat(Star(Union(Byte('a'), Byte('b'))), tail)
	got := factorsOf(s)
	if s.IsExact() {
		t.Error("star concat must not be exact")
	}
	if len(got) != 1 || got[0] != "ab" {
		t.Errorf("factors = %v, want [ab]", got)
	}
}

func TestConcatPrefersLongerMinimum(t *testing.T) {
	short := Plus(Byte('x'))             // complete {x}, not exact
	long := Concat(Byte('a'), Byte('b')) // exact {ab}
	j := Concat(short, long)
	got := factorsOf(j)
	if len(got) != 1 || got[0] != "ab" {
		t.Errorf("factors = %v, want [ab]", got)
	}
}

func TestUnion(t *testing.T) {
	u := Union(Byte('a'), Byte('b'))
	if !u.IsExact() || len(factorsOf(u)) != 2 {
		t.Errorf("union of bytes should stay exact, got %v", factorsOf(u))
	}

	if Union(Byte('a'), Inexact()).Factors() != nil {
		t.Error("union with an unguaranteed branch must drop the guarantee")
	}
}

func TestRepetition(t *testing.T) {
	a := Byte('a')
	if Star(a).Factors() != nil {
		t.Error("a* accepts empty input; no factor may be required")
	}
	if Optional(a).Factors() != nil {
		t.Error("a? accepts empty input; no factor may be required")
	}
	p := Plus(a)
	got := factorsOf(p)
	if p.IsExact() {
		t.Error("a+ is infinite, cannot be exact")
	}
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("a+ factors = %v, want [a]", got)
	}
}

// TestFactorLengthCap checks that over-long exact joins degrade instead of
// growing unboundedly.
func TestFactorLengthCap(t *testing.T) {
	s := Byte('a')
	for i := 0; i < MaxFactorLen+4; i++ {
		s = Concat(s, Byte('a'))
	}
	// The literal is longer than MaxFactorLen, so the exact join gave
	// up somewhere; whatever survives must still be a valid factor
	// guarantee or nothing.
	if f := s.Factors(); f != nil {
		for _, l := range f {
			if len(l) == 0 || len(l) > MaxFactorLen {
				t.Errorf("factor %q violates length bounds", l)
			}
		}
	}
}
