// Package prefilter rejects inputs cheaply before the DFA runs.
//
// A filter is built from the required literal factors extracted during
// parsing: every accepted input contains at least one factor, so an input
// containing none can be rejected without touching the transition tables.
// One factor is a plain substring search; several go through an
// Aho-Corasick automaton so the input is scanned once regardless of factor
// count.
//
// The filter is one-sided. Reject(input) == true is definitive;
// false means "run the matcher", not "match".
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/frozenregex/literal"
)

// Filter is an immutable quick-reject predicate. A nil *Filter is valid
// and rejects nothing.
type Filter struct {
	single []byte
	multi  *ahocorasick.Automaton
	count  int
}

// FromSeq builds a filter from a fragment's literal summary. Returns nil
// when the summary carries no usable factor guarantee, or when the
// automaton cannot be built; matching stays correct either way, just
// unfiltered.
func FromSeq(seq *literal.Seq) *Filter {
	factors := seq.Factors()
	if factors == nil {
		return nil
	}
	if len(factors) == 1 {
		return &Filter{single: factors[0], count: 1}
	}
	builder := ahocorasick.NewBuilder()
	for _, f := range factors {
		builder.AddPattern(f)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Filter{multi: auto, count: len(factors)}
}

// Len returns the number of factors the filter scans for; 0 for nil.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return f.count
}

// Reject reports whether input definitely cannot be accepted: it contains
// none of the required factors.
func (f *Filter) Reject(input []byte) bool {
	switch {
	case f == nil:
		return false
	case f.single != nil:
		return !bytes.Contains(input, f.single)
	default:
		return !f.multi.IsMatch(input)
	}
}
