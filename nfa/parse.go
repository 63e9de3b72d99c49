package nfa

import (
	"strings"

	"github.com/coregx/frozenregex/internal/container"
	"github.com/coregx/frozenregex/literal"
)

// fragment is one operand on the parser's stack: the entry and exit states
// of a Thompson sub-automaton, the number of states it contains, and the
// literal summary of its language. Fragments own no states; the arena does.
type fragment struct {
	start StateID
	end   StateID
	size  int
	seq   *literal.Seq
}

// parser holds the shunting-yard state for one Parse call.
type parser struct {
	states []*State   // arena; ids are index+1
	frags  []fragment // operand stack
	ops    []C        // operator stack
}

// Parse converts a pattern into a Thompson NFA.
//
// The fragment stack is pre-seeded with an epsilon-symbol fragment so that
// the empty pattern produces an automaton accepting exactly the empty
// string.
func Parse(pattern string) (*NFA, error) {
	if strings.IndexByte(pattern, byte(Epsilon)) >= 0 {
		return nil, &ParseError{Pattern: pattern, Err: ErrNulByte}
	}
	p := &parser{}
	frag, err := p.run(Normalize(pattern))
	if err != nil {
		perr := err.(*ParseError)
		perr.Pattern = pattern
		return nil, perr
	}
	return &NFA{
		states: p.states,
		start:  frag.start,
		end:    frag.end,
		seq:    frag.seq,
	}, nil
}

// newState allocates a fresh state in the arena.
func (p *parser) newState(isEnd bool) *State {
	s := &State{
		id:          StateID(len(p.states) + 1),
		isEnd:       isEnd,
		transitions: container.NewMap[C, *IDSet](HashC),
	}
	p.states = append(p.states, s)
	return s
}

// newSymbol builds the two-state fragment for a single symbol:
//
//	start --c--> end
func (p *parser) newSymbol(c C) fragment {
	start := p.newState(false)
	end := p.newState(true)
	start.AddTransition(c, end.id)
	seq := literal.Byte(c)
	if c == Epsilon {
		seq = literal.Epsilon()
	}
	return fragment{start: start.id, end: end.id, size: 2, seq: seq}
}

// newClass builds the fragment for a character class: one start, one
// accepting end, one edge per byte.
func (p *parser) newClass(chs []C) fragment {
	start := p.newState(false)
	end := p.newState(true)
	for _, c := range chs {
		start.AddTransition(c, end.id)
	}
	return fragment{start: start.id, end: end.id, size: 2, seq: literal.Class(chs)}
}

// concat joins two fragments with an epsilon edge:
//
//	a.start ~~> a.end --e--> b.start ~~> b.end
//
// a.end loses its accepting flag as a side effect of gaining an edge.
func (p *parser) concat(a, b fragment) fragment {
	p.states[a.end-1].AddTransition(Epsilon, b.start)
	return fragment{
		start: a.start,
		end:   b.end,
		size:  a.size + b.size,
		seq:   literal.Concat(a.seq, b.seq),
	}
}

// union builds the alternation template:
//
//	     e            e
//	    +-> a ~~> a' -+
//	s ->+             +-> e'
//	    +-> b ~~> b' -+
//	     e            e
func (p *parser) union(a, b fragment) fragment {
	start := p.newState(false)
	end := p.newState(true)
	start.AddTransition(Epsilon, a.start)
	start.AddTransition(Epsilon, b.start)
	p.states[a.end-1].AddTransition(Epsilon, end.id)
	p.states[b.end-1].AddTransition(Epsilon, end.id)
	return fragment{
		start: start.id,
		end:   end.id,
		size:  a.size + b.size + 2,
		seq:   literal.Union(a.seq, b.seq),
	}
}

// closure builds the Kleene star template:
//
//	         e
//	       +----+
//	    e  v    | e
//	s -> a ~~> a' -> e'
//	|                ^
//	+----------------+
//	        e
func (p *parser) closure(a fragment) fragment {
	start := p.newState(false)
	end := p.newState(true)
	p.states[a.end-1].AddTransition(Epsilon, a.start)
	start.AddTransition(Epsilon, a.start)
	p.states[a.end-1].AddTransition(Epsilon, end.id)
	start.AddTransition(Epsilon, end.id)
	return fragment{
		start: start.id,
		end:   end.id,
		size:  a.size + 2,
		seq:   literal.Star(a.seq),
	}
}

// plus is a+ as a·a*: the closure template wired behind a copy-free concat
// of the same fragment.
func (p *parser) plus(a fragment) fragment {
	cl := p.closure(a)
	f := p.concat(a, cl)
	f.seq = literal.Plus(a.seq)
	return f
}

// optional builds the a? template:
//
//	  e          e
//	s -> a ~~> a' -> e'
//	|                ^
//	+----------------+
//	        e
func (p *parser) optional(a fragment) fragment {
	start := p.newState(false)
	end := p.newState(true)
	start.AddTransition(Epsilon, a.start)
	p.states[a.end-1].AddTransition(Epsilon, end.id)
	start.AddTransition(Epsilon, end.id)
	return fragment{
		start: start.id,
		end:   end.id,
		size:  a.size + 2,
		seq:   literal.Optional(a.seq),
	}
}

// pop removes and returns the top fragment.
func (p *parser) pop() (fragment, bool) {
	if len(p.frags) == 0 {
		return fragment{}, false
	}
	f := p.frags[len(p.frags)-1]
	p.frags = p.frags[:len(p.frags)-1]
	return f, true
}

// calc applies the top operator to the top fragments.
func (p *parser) calc(pos int) error {
	if len(p.ops) == 0 {
		return nil
	}
	op := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]

	apply1 := func(f func(fragment) fragment) error {
		a, ok := p.pop()
		if !ok {
			return &ParseError{Pos: pos, Err: ErrMissingOperand}
		}
		p.frags = append(p.frags, f(a))
		return nil
	}
	apply2 := func(f func(a, b fragment) fragment) error {
		b, ok := p.pop()
		if !ok {
			return &ParseError{Pos: pos, Err: ErrMissingOperand}
		}
		a, ok := p.pop()
		if !ok {
			return &ParseError{Pos: pos, Err: ErrMissingOperand}
		}
		p.frags = append(p.frags, f(a, b))
		return nil
	}

	switch op {
	case OpClosure:
		return apply1(p.closure)
	case OpPlus:
		return apply1(p.plus)
	case OpOptional:
		return apply1(p.optional)
	case OpConcat:
		return apply2(p.concat)
	case OpUnion:
		return apply2(p.union)
	}
	return nil
}

// run executes the shunting-yard loop over the normalized pattern.
func (p *parser) run(s string) (fragment, error) {
	p.frags = append(p.frags, p.newSymbol(Epsilon))

	i := 0
	for i < len(s) {
		pos := i
		x := s[i]
		i++
		switch {
		case isCalculationOperator(x):
			for len(p.ops) > 0 &&
				isCalculationOperator(p.ops[len(p.ops)-1]) &&
				operatorPriority(p.ops[len(p.ops)-1]) >= operatorPriority(x) {
				if err := p.calc(pos); err != nil {
					return fragment{}, err
				}
			}
			p.ops = append(p.ops, x)
		case x == OpLeftPair:
			p.ops = append(p.ops, x)
		case x == OpRightPair:
			for len(p.ops) > 0 && p.ops[len(p.ops)-1] != OpLeftPair {
				if err := p.calc(pos); err != nil {
					return fragment{}, err
				}
			}
			if len(p.ops) == 0 {
				return fragment{}, &ParseError{Pos: pos, Err: ErrUnbalancedParen}
			}
			p.ops = p.ops[:len(p.ops)-1]
		case x == OpClassStart:
			chs, next, err := parseClass(s, i)
			if err != nil {
				return fragment{}, err
			}
			i = next
			p.frags = append(p.frags, p.newClass(chs))
		case x == OpClassEnd:
			// Stray ']' outside a class; harmless, skip it.
		case x == OpEscape:
			if i >= len(s) {
				return fragment{}, &ParseError{Pos: pos, Err: ErrTrailingEscape}
			}
			x = s[i]
			i++
			p.frags = append(p.frags, p.newSymbol(x))
		default:
			p.frags = append(p.frags, p.newSymbol(x))
		}
	}
	for len(p.ops) > 0 {
		if p.ops[len(p.ops)-1] == OpLeftPair {
			return fragment{}, &ParseError{Pos: len(s), Err: ErrUnbalancedParen}
		}
		if err := p.calc(len(s)); err != nil {
			return fragment{}, err
		}
	}
	return p.frags[len(p.frags)-1], nil
}

// classToken is one lexed element of a class body.
type classToken struct {
	b       C
	escaped bool // an escaped '-' or ']' loses its structural meaning
}

// parseClass consumes a class body starting just after '[', returning the
// byte set it denotes and the offset just after the closing ']'.
//
// A '-' between two bytes forms an inclusive range; a '-' missing an
// endpoint on one side or both (as in [a-] or [-a]) is the literal byte. '\' escapes the next byte, so ']'
// and '-' can be class members.
func parseClass(s string, i int) ([]C, int, error) {
	open := i - 1
	var tokens []classToken
	for {
		if i >= len(s) {
			return nil, 0, &ParseError{Pos: open, Err: ErrUnterminatedClass}
		}
		c := s[i]
		if c == OpClassEnd {
			i++
			break
		}
		if c == OpEscape {
			if i+1 >= len(s) {
				return nil, 0, &ParseError{Pos: i, Err: ErrTrailingEscape}
			}
			tokens = append(tokens, classToken{b: s[i+1], escaped: true})
			i += 2
			continue
		}
		tokens = append(tokens, classToken{b: c})
		i++
	}
	if len(tokens) == 0 {
		return nil, 0, &ParseError{Pos: open, Err: ErrEmptyClass}
	}

	// Collect ranges, then expand to the byte set.
	type span struct{ lo, hi C }
	var spans []span
	pending := C(0)
	havePending := false
	flush := func() {
		if havePending {
			spans = append(spans, span{pending, pending})
			havePending = false
		}
	}
	for j := 0; j < len(tokens); j++ {
		t := tokens[j]
		isDash := t.b == OpClassTo && !t.escaped
		if isDash && havePending && j+1 < len(tokens) &&
			!(tokens[j+1].b == OpClassTo && !tokens[j+1].escaped) {
			hi := tokens[j+1].b
			if hi < pending {
				return nil, 0, &ParseError{Pos: open, Err: ErrReversedRange}
			}
			spans = append(spans, span{pending, hi})
			havePending = false
			j++
			continue
		}
		if isDash {
			// No usable endpoint; the dash is a literal member.
			flush()
			spans = append(spans, span{OpClassTo, OpClassTo})
			continue
		}
		flush()
		pending = t.b
		havePending = true
	}
	flush()

	var member [256]bool
	var chs []C
	for _, sp := range spans {
		for x := int(sp.lo); x <= int(sp.hi); x++ {
			if !member[x] {
				member[x] = true
				chs = append(chs, C(x))
			}
		}
	}
	return chs, i, nil
}
