// Package frozen flattens a built DFA into fixed-size lookup tables and
// matches inputs against them.
//
// The frozen form is four arrays:
//
//	chs[NChars]                     the accepted bytes
//	index[AlphabetSize]             byte → 1-based column, 0 = rejected
//	transitions[NStates][NChars]    1-based target state, 0 = none
//	accept[NStates]                 accepting flag per state
//
// States are numbered 1..NStates with the start state at 1; 0 is reserved
// as "no transition" in table entries. Matching is two table lookups and a
// comparison per input byte, no branching on pattern structure, and the
// value is immutable: share it freely across goroutines.
package frozen

import "fmt"

// Frozen is the read-only table form of a DFA.
type Frozen struct {
	chs          []byte
	index        []uint8    // len alphabetSize when pre-indexed, else nil
	transitions  [][]uint16 // NStates rows × NChars columns
	accept       []bool
	alphabetSize int
}

// Size returns the number of states.
func (f *Frozen) Size() int { return len(f.transitions) }

// NumChars returns the number of accepted bytes.
func (f *Frozen) NumChars() int { return len(f.chs) }

// AlphabetSize returns the configured alphabet size.
func (f *Frozen) AlphabetSize() int { return f.alphabetSize }

// PreIndexed reports whether the byte index table is baked in. When false,
// every Match call rebuilds it in a scratch allocation.
func (f *Frozen) PreIndexed() bool { return f.index != nil }

// Chars returns a copy of the accepted bytes in column order.
func (f *Frozen) Chars() []byte {
	return append([]byte(nil), f.chs...)
}

// IndexTable returns a copy of the baked byte index table, or nil when the
// value is not pre-indexed.
func (f *Frozen) IndexTable() []uint8 {
	if f.index == nil {
		return nil
	}
	return append([]uint8(nil), f.index...)
}

// Transitions returns a copy of the transition rows in state order.
func (f *Frozen) Transitions() [][]uint16 {
	rows := make([][]uint16, len(f.transitions))
	for i, row := range f.transitions {
		rows[i] = append([]uint16(nil), row...)
	}
	return rows
}

// Accepting returns a copy of the per-state accepting flags.
func (f *Frozen) Accepting() []bool {
	return append([]bool(nil), f.accept...)
}

// buildIndex computes the byte→column table from chs.
func (f *Frozen) buildIndex() []uint8 {
	t := make([]uint8, f.alphabetSize)
	for i, c := range f.chs {
		t[int(c)%f.alphabetSize] = uint8(i + 1)
	}
	return t
}

// Match reports whether the DFA accepts exactly the whole input.
func (f *Frozen) Match(input []byte) bool {
	t := f.index
	if t == nil {
		t = f.buildIndex()
	}
	a := f.alphabetSize
	st := uint16(1)
	for _, ch := range input {
		j := t[int(ch)%a]
		if j == 0 {
			return false
		}
		to := f.transitions[st-1][j-1]
		if to == 0 {
			return false
		}
		st = to
	}
	return f.accept[st-1]
}

// MatchString is Match for strings.
func (f *Frozen) MatchString(input string) bool {
	t := f.index
	if t == nil {
		t = f.buildIndex()
	}
	a := f.alphabetSize
	st := uint16(1)
	for i := 0; i < len(input); i++ {
		j := t[int(input[i])%a]
		if j == 0 {
			return false
		}
		to := f.transitions[st-1][j-1]
		if to == 0 {
			return false
		}
		st = to
	}
	return f.accept[st-1]
}

// String returns a debug representation of the frozen DFA.
func (f *Frozen) String() string {
	return fmt.Sprintf("Frozen{states: %d, chars: %d, alphabet: %d, preIndexed: %v}",
		f.Size(), f.NumChars(), f.alphabetSize, f.PreIndexed())
}

// NewFromTables builds a Frozen value from externally produced tables,
// validating them the way UnmarshalBinary validates a decoded artifact.
// Generated code from cmd/dfagen funnels through here. indexTable may be
// nil for a non-pre-indexed value. The slices are retained, not copied.
func NewFromTables(chs []byte, indexTable []uint8, transitions [][]uint16, accept []bool, alphabetSize int) (*Frozen, error) {
	f := &Frozen{
		chs:          chs,
		index:        indexTable,
		transitions:  transitions,
		accept:       accept,
		alphabetSize: alphabetSize,
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// validate checks the structural invariants of the tables.
func (f *Frozen) validate() error {
	bad := func(format string, args ...any) error {
		return &FreezeError{Kind: BadArtifact, Message: fmt.Sprintf(format, args...)}
	}
	if f.alphabetSize < 1 || f.alphabetSize > 256 {
		return bad("alphabet size %d out of range", f.alphabetSize)
	}
	nstates := len(f.transitions)
	nchars := len(f.chs)
	if nstates == 0 {
		return bad("no states")
	}
	if nstates > maxStates {
		return bad("state count %d exceeds %d", nstates, maxStates)
	}
	if nchars > maxChars {
		return bad("char count %d exceeds %d", nchars, maxChars)
	}
	if len(f.accept) != nstates {
		return bad("accept table has %d entries for %d states", len(f.accept), nstates)
	}

	// Each accepted byte must fit the alphabet and occupy its own
	// index slot.
	var seen [256]bool
	for _, c := range f.chs {
		if int(c) >= f.alphabetSize {
			return bad("accepted byte 0x%02x outside alphabet of size %d", c, f.alphabetSize)
		}
		if seen[c] {
			return bad("duplicate accepted byte 0x%02x", c)
		}
		seen[c] = true
	}

	if f.index != nil {
		if len(f.index) != f.alphabetSize {
			return bad("index table has %d entries for alphabet size %d", len(f.index), f.alphabetSize)
		}
		want := f.buildIndex()
		for i := range want {
			if f.index[i] != want[i] {
				return bad("index table disagrees with accepted bytes at %d", i)
			}
		}
	}

	for i, row := range f.transitions {
		if len(row) != nchars {
			return bad("transition row %d has %d columns for %d chars", i, len(row), nchars)
		}
		for _, to := range row {
			if int(to) > nstates {
				return bad("transition target %d exceeds state count %d", to, nstates)
			}
		}
	}
	return nil
}

const (
	// maxStates keeps state numbers within uint16, with 0 reserved.
	maxStates = 0xFFFF

	// maxChars keeps column indices within uint8, with 0 reserved.
	maxChars = 0xFF
)
