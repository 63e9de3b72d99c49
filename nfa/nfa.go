package nfa

import (
	"fmt"

	"github.com/coregx/frozenregex/internal/container"
	"github.com/coregx/frozenregex/internal/hashing"
	"github.com/coregx/frozenregex/literal"
)

// C is a pattern or input character: a single 8-bit byte.
type C = byte

// Epsilon is the empty-input transition label. It is reserved: a NUL byte
// may appear in neither patterns nor accepted inputs.
const Epsilon C = 0x00

// StateID uniquely identifies an NFA state within one parse.
// IDs are assigned in allocation order starting from 1; 0 is invalid.
type StateID uint32

// InvalidState is the zero StateID, never assigned to a real state.
const InvalidState StateID = 0

// HashStateID seeds probe positions for containers keyed by StateID.
func HashStateID(id StateID) uint32 {
	return hashing.Uint32(uint32(id))
}

// HashC seeds probe positions for containers keyed by character.
func HashC(c C) uint32 {
	return hashing.Byte(c)
}

// IDSet is a set of NFA state ids with deterministic iteration order.
type IDSet = container.Set[StateID]

// NewIDSet creates an empty id set.
func NewIDSet() *IDSet {
	return container.NewSet[StateID](HashStateID)
}

// State is a single NFA state: an id, an accepting flag, and a transition
// table mapping each byte (including Epsilon) to a set of target states.
type State struct {
	id          StateID
	isEnd       bool
	transitions *container.Map[C, *IDSet]
}

// ID returns the state's unique identifier.
func (s *State) ID() StateID { return s.id }

// IsEnd reports whether the state is accepting.
func (s *State) IsEnd() bool { return s.isEnd }

// AddTransition adds an edge labeled c to the given state. A state stays
// accepting only while it has no outgoing edges added after it was marked;
// adding any edge clears the flag.
func (s *State) AddTransition(c C, to StateID) {
	set, ok := s.transitions.Get(c)
	if !ok {
		set = NewIDSet()
		s.transitions.Set(c, set)
	}
	set.Add(to)
	if s.isEnd {
		s.isEnd = false
	}
}

// Accepts reports whether the state has any edge labeled c.
func (s *State) Accepts(c C) bool { return s.transitions.Has(c) }

// Nexts returns the targets reachable on c, or nil if there are none. The
// returned set is shared and must not be modified.
func (s *State) Nexts(c C) *IDSet {
	set, _ := s.transitions.Get(c)
	return set
}

// Labels returns the edge labels in first-insertion order, Epsilon
// included. The returned slice is shared and must not be modified.
func (s *State) Labels() []C { return s.transitions.Keys() }

// String returns a debug representation of the state.
func (s *State) String() string {
	return fmt.Sprintf("State(%d, end=%v, labels=%d)", s.id, s.isEnd, len(s.Labels()))
}

// NFA is the parsed automaton: an arena of states plus the entry and exit
// of the top-level fragment. It owns every state the parse allocated,
// including ones belonging to fragments that did not end up reachable from
// the start (the empty-pattern seed, for one).
type NFA struct {
	states []*State
	start  StateID
	end    StateID
	seq    *literal.Seq
}

// Start returns the entry state id.
func (n *NFA) Start() StateID { return n.start }

// End returns the exit state id of the top-level fragment.
func (n *NFA) End() StateID { return n.end }

// Len returns the total number of allocated states.
func (n *NFA) Len() int { return len(n.states) }

// State returns the state with the given id, or nil if the id is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) > len(n.states) {
		return nil
	}
	return n.states[id-1]
}

// Seq returns the literal summary computed for the top-level fragment.
func (n *NFA) Seq() *literal.Seq { return n.seq }

// String returns a debug representation of the NFA.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, end: %d}", len(n.states), n.start, n.end)
}
