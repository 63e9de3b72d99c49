package frozen

import (
	"fmt"

	"github.com/coregx/frozenregex/dfa/full"
	"github.com/coregx/frozenregex/internal/conv"
)

// Freeze flattens a built DFA into tables.
//
// The alphabet bytes become columns in first-appearance order; state rows
// are laid out by sequence number, so the start state lands in row 0 and
// matching always begins at state 1. The DFA is not retained; callers can
// drop it once Freeze returns.
func Freeze(d *full.DFA, cfg Config) (*Frozen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nstates := d.Size()
	if nstates > maxStates {
		return nil, &FreezeError{
			Kind:    StateOverflow,
			Message: fmt.Sprintf("%d DFA states exceed the uint16 table limit", nstates),
		}
	}

	alphabet := d.Alphabet()
	nchars := len(alphabet)
	if nchars > maxChars {
		return nil, &FreezeError{
			Kind:    CharOverflow,
			Message: fmt.Sprintf("%d accepted bytes exceed the uint8 index limit", nchars),
		}
	}

	chs := append([]byte(nil), alphabet...)

	// tmp is the byte→column table used while filling rows; it becomes
	// the persistent index table when pre-indexing is on.
	tmp := make([]uint8, cfg.AlphabetSize)
	for i, c := range chs {
		if int(c) >= cfg.AlphabetSize {
			return nil, &FreezeError{
				Kind:    AlphabetOverflow,
				Message: fmt.Sprintf("pattern byte 0x%02x does not fit alphabet of size %d", c, cfg.AlphabetSize),
			}
		}
		slot := int(c) % cfg.AlphabetSize
		if tmp[slot] != 0 {
			return nil, &FreezeError{
				Kind:    AlphabetOverflow,
				Message: fmt.Sprintf("accepted bytes 0x%02x and 0x%02x collide modulo %d", chs[tmp[slot]-1], c, cfg.AlphabetSize),
			}
		}
		tmp[slot] = conv.IntToUint8(i + 1)
	}

	transitions := make([][]uint16, nstates)
	accept := make([]bool, nstates)
	for _, st := range d.States() {
		row := make([]uint16, nchars)
		for _, c := range st.Labels() {
			j := tmp[int(c)%cfg.AlphabetSize]
			row[j-1] = conv.IntToUint16(st.Next(c).No())
		}
		transitions[st.No()-1] = row
		accept[st.No()-1] = st.IsEnd()
	}

	f := &Frozen{
		chs:          chs,
		transitions:  transitions,
		accept:       accept,
		alphabetSize: cfg.AlphabetSize,
	}
	if cfg.PreIndex {
		f.index = tmp
	}
	return f, nil
}

// FreezePattern parses, determinizes, and freezes a pattern in one step.
func FreezePattern(pattern string, cfg Config) (*Frozen, error) {
	d, err := full.BuildPattern(pattern)
	if err != nil {
		return nil, err
	}
	return Freeze(d, cfg)
}
