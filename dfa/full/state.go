package full

import (
	"encoding/binary"
	"fmt"

	"github.com/coregx/frozenregex/internal/container"
	"github.com/coregx/frozenregex/internal/hashing"
	"github.com/coregx/frozenregex/nfa"
)

// State is one DFA state: the subset of NFA states it represents, a stable
// identity derived from that subset, a dense sequence number for table
// layout, and a deterministic transition table.
type State struct {
	// id is the FNV-32 hash of the sorted NFA ids. It is stable across
	// builds of the same pattern and is what the state reports publicly;
	// interning uses key, so hash collisions cannot merge distinct
	// subsets.
	id uint32

	// key is the packed sorted NFA-id sequence, the canonical identity.
	key string

	// no is the sequence number within one build, assigned in creation
	// order starting at 1. The start state is always 1. Frozen tables
	// are laid out by no.
	no int

	isEnd       bool
	transitions *container.Map[nfa.C, *State]
}

// ID returns the subset hash of the state.
func (s *State) ID() uint32 { return s.id }

// No returns the state's sequence number within its DFA, start state 1.
func (s *State) No() int { return s.no }

// IsEnd reports whether the state is accepting: whether any NFA state in
// its subset is.
func (s *State) IsEnd() bool { return s.isEnd }

// Next returns the target state on c, or nil if there is no transition.
func (s *State) Next(c nfa.C) *State {
	t, _ := s.transitions.Get(c)
	return t
}

// HasTransition reports whether the state has an outgoing edge on c.
func (s *State) HasTransition(c nfa.C) bool { return s.transitions.Has(c) }

// Labels returns the outgoing edge labels in insertion order. The returned
// slice is shared and must not be modified.
func (s *State) Labels() []nfa.C { return s.transitions.Keys() }

// addTransition records the deterministic edge on c.
func (s *State) addTransition(c nfa.C, to *State) {
	s.transitions.Set(c, to)
}

// String returns a debug representation of the state.
func (s *State) String() string {
	return fmt.Sprintf("DfaState(no=%d, id=%08x, end=%v, edges=%d)",
		s.no, s.id, s.isEnd, len(s.Labels()))
}

// hashState seeds probe positions for containers keyed by *State.
func hashState(s *State) uint32 { return s.id }

// sortedIDs extracts the NFA ids from a subset and sorts them ascending.
// Insertion sort: subsets are small and often nearly sorted already.
func sortedIDs(set *nfa.IDSet) []uint32 {
	vals := set.Values()
	ids := make([]uint32, len(vals))
	for i, v := range vals {
		ids[i] = uint32(v)
	}
	for i := 1; i < len(ids); i++ {
		key := ids[i]
		j := i - 1
		for j >= 0 && ids[j] > key {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = key
	}
	return ids
}

// packKey encodes a sorted id sequence as the canonical interning key.
func packKey(ids []uint32) string {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[4*i:], id)
	}
	return string(buf)
}

// subsetIdentity returns the interning key and subset hash for a set of
// NFA states.
func subsetIdentity(set *nfa.IDSet) (key string, id uint32) {
	ids := sortedIDs(set)
	return packKey(ids), hashing.Uint32s(ids)
}
