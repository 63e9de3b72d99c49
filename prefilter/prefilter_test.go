package prefilter

import (
	"testing"

	"github.com/coregx/frozenregex/nfa"
)

func filterFor(t *testing.T, pattern string) *Filter {
	t.Helper()
	n, err := nfa.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return FromSeq(n.Seq())
}

func TestFromSeqSelection(t *testing.T) {
	tests := []struct {
		pattern string
		count   int // 0 means no filter
	}{
		{"", 0},
		{"abc", 1},
		{"a*", 0},
		{"a+", 1},
		{"(a|b)*ab", 1},
		{"h(e|a)llo?", 2}, // {hell, hall}
		{"foo|bar", 2},
		{"(x|y)?", 0},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f := filterFor(t, tt.pattern)
			if f.Len() != tt.count {
				t.Errorf("filter for %q has %d factors, want %d", tt.pattern, f.Len(), tt.count)
			}
		})
	}
}

func TestNilFilterRejectsNothing(t *testing.T) {
	var f *Filter
	if f.Reject([]byte("anything")) {
		t.Error("nil filter must not reject")
	}
	if f.Len() != 0 {
		t.Error("nil filter length must be 0")
	}
}

func TestSingleFactorReject(t *testing.T) {
	f := filterFor(t, "(a|b)*ab")
	if f.Reject([]byte("ababab")) {
		t.Error("input containing the factor must pass")
	}
	if !f.Reject([]byte("bbbb")) {
		t.Error("input without 'a' must be rejected")
	}
}

func TestMultiFactorReject(t *testing.T) {
	f := filterFor(t, "foo|bar")
	for _, in := range []string{"foo", "xxfooxx", "bar", "foobar"} {
		if f.Reject([]byte(in)) {
			t.Errorf("Reject(%q) = true, want pass", in)
		}
	}
	for _, in := range []string{"", "fo", "ba", "xyz"} {
		if !f.Reject([]byte(in)) {
			t.Errorf("Reject(%q) = false, want reject", in)
		}
	}
}

// TestFilterSoundness is the property that matters: whenever the filter
// rejects, the NFA simulation must reject too.
func TestFilterSoundness(t *testing.T) {
	patterns := []string{
		"", "a", "abc", "a*", "a+", "a?", "(a|b)*ab", "foo|bar",
		"h(e|a)llo?", "[a-c]+", "x(y|z)+", "(ab|cd)(ef|gh)",
	}
	inputs := []string{
		"", "a", "b", "ab", "abc", "foo", "bar", "baz", "hello",
		"hallo", "hxllo", "xy", "xz", "xyzy", "abef", "cdgh", "abgh",
		"aaaa", "cccc",
	}
	for _, p := range patterns {
		n, err := nfa.Parse(p)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		f := FromSeq(n.Seq())
		for _, in := range inputs {
			if f.Reject([]byte(in)) && n.Accepts([]byte(in)) {
				t.Errorf("pattern %q input %q: filter rejected an accepted input", p, in)
			}
		}
	}
}
