// Package full converts a Thompson NFA into a complete DFA via subset
// construction.
//
// Unlike a lazy DFA, every reachable state is determinized up front: the
// result is finite, immutable, and sized for freezing into flat tables.
// Construction cost is paid once at build time, which is the point of the
// whole pipeline.
//
// State identity is canonical: a DFA state is the set of NFA states it
// represents, interned by the packed sorted-id sequence. Two construction
// paths reaching the same subset always land on the same *State, so the
// work queue sees each subset exactly once and termination follows from
// the finiteness of subsets.
package full

import (
	"github.com/coregx/frozenregex/internal/container"
	"github.com/coregx/frozenregex/internal/hashing"
	"github.com/coregx/frozenregex/nfa"
)

// moveTable maps a byte to the raw (pre-closure) NFA successor set, the
// union of delta(s, c) over the subset.
type moveTable = container.Map[nfa.C, *nfa.IDSet]

// Builder runs one subset construction over an NFA.
type Builder struct {
	nfa *nfa.NFA

	// states interns DFA states by subset key.
	states *container.Map[string, *State]

	// moves caches the per-state non-epsilon move table, keyed like
	// states.
	moves *container.Map[string, *moveTable]

	// closureCache maps the key of a raw successor set to the state its
	// epsilon closure produced, so closures are computed once per
	// distinct pre-closure set.
	closureCache *container.Map[string, *State]
}

// NewBuilder creates a builder for the given NFA.
func NewBuilder(n *nfa.NFA) *Builder {
	return &Builder{
		nfa:          n,
		states:       container.NewMap[string, *State](hashKey),
		moves:        container.NewMap[string, *moveTable](hashKey),
		closureCache: container.NewMap[string, *State](hashKey),
	}
}

func hashKey(k string) uint32 {
	return hashing.String(k)
}

// Build runs the subset construction to completion. It never fails:
// structural pattern errors surface at parse time, and size limits are
// enforced later at freeze time.
func (b *Builder) Build() *DFA {
	n0 := nfa.NewIDSet()
	n0.Add(b.nfa.Start())
	b.nfa.EpsilonClosure(n0)
	s0 := b.newState(n0)

	queue := container.NewUniqueQueue[*State](hashState)
	queue.Push(s0)

	d := &DFA{
		start:    s0,
		alphabet: container.NewSet[nfa.C](nfa.HashC),
	}

	for !queue.Empty() {
		s, _ := queue.Pop()
		if mt, ok := b.moves.Get(s.key); ok {
			for _, c := range mt.Keys() {
				t := b.move(s, c)
				s.addTransition(c, t)
				// Push dedups against everything ever
				// enqueued, so discovery enqueues each state
				// once.
				queue.Push(t)
			}
		}
		d.addState(s)
	}
	return d
}

// newState interns a DFA state for the given (already closed) subset and
// computes its raw move table.
func (b *Builder) newState(set *nfa.IDSet) *State {
	key, id := subsetIdentity(set)

	isEnd := false
	for _, sid := range set.Values() {
		if b.nfa.State(sid).IsEnd() {
			isEnd = true
			break
		}
	}

	mt := container.NewMap[nfa.C, *nfa.IDSet](nfa.HashC)
	for _, sid := range set.Values() {
		st := b.nfa.State(sid)
		for _, c := range st.Labels() {
			if c == nfa.Epsilon {
				continue
			}
			dst, ok := mt.Get(c)
			if !ok {
				dst = nfa.NewIDSet()
				mt.Set(c, dst)
			}
			dst.Merge(st.Nexts(c))
		}
	}
	b.moves.Set(key, mt)

	st := &State{
		id:          id,
		key:         key,
		no:          b.states.Len() + 1,
		isEnd:       isEnd,
		transitions: container.NewMap[nfa.C, *State](nfa.HashC),
	}
	b.states.Set(key, st)
	return st
}

// move returns the DFA state reached from s on byte c.
//
// The closure cache is keyed by the raw successor set: if the epsilon
// closure of that exact set was computed before, the resulting state is
// returned without re-closing.
func (b *Builder) move(s *State, c nfa.C) *State {
	mt, _ := b.moves.Get(s.key)
	raw, _ := mt.Get(c)

	kid, _ := subsetIdentity(raw)
	if st, ok := b.closureCache.Get(kid); ok {
		return st
	}

	closed := raw.Clone()
	b.nfa.EpsilonClosure(closed)

	key, _ := subsetIdentity(closed)
	st, ok := b.states.Get(key)
	if !ok {
		st = b.newState(closed)
	}
	b.closureCache.Set(kid, st)
	return st
}

// Build is a convenience running a full subset construction over n.
func Build(n *nfa.NFA) *DFA {
	return NewBuilder(n).Build()
}

// BuildPattern parses a pattern and determinizes it in one step.
func BuildPattern(pattern string) (*DFA, error) {
	n, err := nfa.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Build(n), nil
}
