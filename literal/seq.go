// Package literal tracks literal factors of the language recognized by a
// regex fragment.
//
// A Seq is computed bottom-up alongside Thompson construction. It answers
// one question for the prefilter: is there a small set of byte strings such
// that every accepted input contains at least one of them? If so, an input
// containing none of the factors can be rejected without running the DFA.
//
// Seqs degrade gracefully: once a fragment's language gets too large or too
// loose to summarize (closures, big classes, oversized cross products), the
// Seq becomes inexact and incomplete and stops constraining anything.
package literal

const (
	// MaxFactors bounds the number of literals carried by a Seq.
	MaxFactors = 32

	// MaxFactorLen bounds the length of a single literal.
	MaxFactorLen = 16
)

// Seq is a literal summary of a fragment's language.
//
// Three levels of knowledge, strongest first:
//
//   - exact: lits is the entire (finite) language.
//   - complete: every accepted string contains at least one element of lits
//     as a substring.
//   - neither: no guarantee at all.
//
// exact implies complete: a string trivially contains itself.
type Seq struct {
	lits     [][]byte
	exact    bool
	complete bool
}

// Exact returns a Seq whose literal set is the whole language.
func Exact(lits ...[]byte) *Seq {
	return &Seq{lits: lits, exact: true, complete: true}
}

// Byte returns the exact Seq for a single-byte language.
func Byte(c byte) *Seq {
	return Exact([]byte{c})
}

// Epsilon returns the exact Seq for the language containing only the empty
// string.
func Epsilon() *Seq {
	return Exact([]byte{})
}

// Inexact returns a Seq carrying no knowledge.
func Inexact() *Seq {
	return &Seq{}
}

// Class returns the Seq for a character class over the given bytes: exact
// when the class is small enough, inexact otherwise.
func Class(chs []byte) *Seq {
	if len(chs) == 0 || len(chs) > MaxFactors {
		return Inexact()
	}
	lits := make([][]byte, len(chs))
	for i, c := range chs {
		lits[i] = []byte{c}
	}
	return Exact(lits...)
}

// IsExact reports whether the literal set is the entire language.
func (s *Seq) IsExact() bool { return s.exact }

// Len returns the number of literals carried.
func (s *Seq) Len() int { return len(s.lits) }

// Factors returns the factor set usable for prefiltering: a non-empty list
// of non-empty literals each of which may appear in an accepted input, with
// the guarantee that every accepted input contains at least one. Returns
// nil when no such guarantee exists.
func (s *Seq) Factors() [][]byte {
	if !s.complete || len(s.lits) == 0 {
		return nil
	}
	for _, l := range s.lits {
		if len(l) == 0 {
			// The empty string is a factor of everything; the
			// guarantee constrains nothing.
			return nil
		}
	}
	return s.lits
}

// minLen returns the length of the shortest literal.
func (s *Seq) minLen() int {
	min := MaxFactorLen + 1
	for _, l := range s.lits {
		if len(l) < min {
			min = len(l)
		}
	}
	return min
}

// Concat combines the summaries of two concatenated fragments.
//
// When both sides are exact and the cross product stays within bounds, the
// result is the exact product language. Otherwise the factor guarantee of
// either side survives concatenation (a substring of u is a substring of
// uv), so the stronger side is kept: longer minimum factor wins.
func Concat(a, b *Seq) *Seq {
	if a.exact && b.exact {
		n := len(a.lits) * len(b.lits)
		if n > 0 && n <= MaxFactors {
			fit := true
			lits := make([][]byte, 0, n)
			for _, x := range a.lits {
				for _, y := range b.lits {
					if len(x)+len(y) > MaxFactorLen {
						fit = false
						break
					}
					l := make([]byte, 0, len(x)+len(y))
					l = append(l, x...)
					l = append(l, y...)
					lits = append(lits, l)
				}
				if !fit {
					break
				}
			}
			if fit {
				return Exact(lits...)
			}
		}
	}
	af, bf := a.Factors(), b.Factors()
	switch {
	case af == nil && bf == nil:
		return Inexact()
	case af == nil:
		return &Seq{lits: bf, complete: true}
	case bf == nil:
		return &Seq{lits: af, complete: true}
	case b.minLen() > a.minLen():
		return &Seq{lits: bf, complete: true}
	default:
		return &Seq{lits: af, complete: true}
	}
}

// Union combines the summaries of two alternated fragments. Completeness
// survives only if both branches are complete, since an accepted string may
// come from either branch.
func Union(a, b *Seq) *Seq {
	if !a.complete || !b.complete {
		return Inexact()
	}
	n := len(a.lits) + len(b.lits)
	if n > MaxFactors {
		return Inexact()
	}
	lits := make([][]byte, 0, n)
	lits = append(lits, a.lits...)
	lits = append(lits, b.lits...)
	return &Seq{
		lits:     lits,
		exact:    a.exact && b.exact,
		complete: true,
	}
}

// Star returns the summary of a closed fragment. The closure accepts the
// empty string, so nothing is required of the input.
func Star(a *Seq) *Seq {
	return Inexact()
}

// Optional returns the summary of an optional fragment. Like Star, the
// empty string is accepted and no factor is required.
func Optional(a *Seq) *Seq {
	return Inexact()
}

// Plus returns the summary of a repeated fragment. Every accepted string
// starts with one full repetition, so the operand's factor guarantee holds;
// exactness does not, the language became infinite.
func Plus(a *Seq) *Seq {
	f := a.Factors()
	if f == nil {
		return Inexact()
	}
	return &Seq{lits: f, complete: true}
}
