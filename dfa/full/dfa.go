package full

import (
	"fmt"

	"github.com/coregx/frozenregex/internal/container"
	"github.com/coregx/frozenregex/nfa"
)

// DFA is the complete deterministic automaton produced by subset
// construction: a start state, every reachable state in discovery order,
// and the alphabet of bytes appearing on any transition.
//
// A DFA is a build-time structure. Freezing (dfa/frozen) flattens it into
// lookup tables and the DFA itself can then be dropped.
type DFA struct {
	start    *State
	states   []*State
	alphabet *container.Set[nfa.C]
}

// Start returns the start state; its sequence number is always 1.
func (d *DFA) Start() *State { return d.start }

// Size returns the number of states.
func (d *DFA) Size() int { return len(d.states) }

// States returns the states in discovery order, which is also sequence
// number order. The returned slice is shared and must not be modified.
func (d *DFA) States() []*State { return d.states }

// Alphabet returns the accepted bytes in first-appearance order. The
// returned slice is shared and must not be modified.
func (d *DFA) Alphabet() []nfa.C { return d.alphabet.Values() }

// addState records a fully wired state and folds its edge labels into the
// alphabet.
func (d *DFA) addState(s *State) {
	d.states = append(d.states, s)
	for _, c := range s.Labels() {
		d.alphabet.Add(c)
	}
}

// Match walks the transition maps directly and reports whole-string
// acceptance. This is the un-frozen reference path; the frozen matcher
// gives the same answer from flat tables.
func (d *DFA) Match(input []byte) bool {
	st := d.start
	for _, c := range input {
		st = st.Next(c)
		if st == nil {
			return false
		}
	}
	return st.IsEnd()
}

// MatchString is Match for strings.
func (d *DFA) MatchString(input string) bool {
	st := d.start
	for i := 0; i < len(input); i++ {
		st = st.Next(input[i])
		if st == nil {
			return false
		}
	}
	return st.IsEnd()
}

// String returns a debug representation of the DFA.
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, alphabet: %d}", len(d.states), d.alphabet.Len())
}
