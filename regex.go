// Package frozenregex compiles regular expressions ahead of time into
// frozen DFA tables and matches whole strings against them.
//
// The pipeline runs entirely at compile (construction) time:
//
//	pattern → normalized pattern → Thompson NFA → DFA → frozen tables
//
// and the artifact is a compact, immutable set of arrays. Matching is two
// table lookups and a comparison per input byte, with no backtracking and
// no per-input allocation when pre-indexing is enabled. The artifact can
// also be serialized (or generated into Go source by cmd/dfagen) so the
// construction cost is paid at build time rather than process start.
//
// Basic usage:
//
//	re, err := frozenregex.Compile("(a|b)*ab")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("ababab") // true
//
// The dialect is byte-oriented and deliberately small: literals, '|',
// '*', '+', '?', '(...)', '[...]' classes with 'x-y' ranges, and '\'
// escaping one byte. Matching is whole-string acceptance only; there is
// no searching, no captures, no anchors, no flags.
package frozenregex

import (
	"github.com/coregx/frozenregex/dfa/frozen"
	"github.com/coregx/frozenregex/dfa/full"
	"github.com/coregx/frozenregex/nfa"
	"github.com/coregx/frozenregex/prefilter"
)

// Config controls compilation.
type Config struct {
	// PreIndex bakes the byte index table into the frozen DFA so
	// matching touches no heap at all. Costs AlphabetSize bytes per
	// compiled pattern.
	//
	// Default: false
	PreIndex bool

	// AlphabetSize is the size of the byte index table; every pattern
	// byte must be below it. 128 covers ASCII, 256 any byte.
	//
	// Default: 128
	AlphabetSize int

	// UsePrefilter enables the literal quick-reject filter when the
	// pattern has required literal factors.
	//
	// Default: true
	UsePrefilter bool
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{
		PreIndex:     false,
		AlphabetSize: frozen.DefaultAlphabetSize,
		UsePrefilter: true,
	}
}

func (c Config) frozenConfig() frozen.Config {
	return frozen.Config{
		PreIndex:     c.PreIndex,
		AlphabetSize: c.AlphabetSize,
	}
}

// Regex is a compiled pattern: the frozen tables plus an optional literal
// prefilter. It is immutable and safe for concurrent use.
type Regex struct {
	pattern string
	frozen  *frozen.Frozen
	filter  *prefilter.Filter
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with explicit configuration.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	n, err := nfa.Parse(pattern)
	if err != nil {
		return nil, err
	}
	f, err := frozen.Freeze(full.Build(n), cfg.frozenConfig())
	if err != nil {
		return nil, err
	}
	r := &Regex{pattern: pattern, frozen: f}
	if cfg.UsePrefilter {
		r.filter = prefilter.FromSeq(n.Seq())
	}
	return r, nil
}

// MustCompile compiles a pattern and panics if it fails. Useful for
// patterns known to be valid, typically in package-level variables.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("frozenregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// Match reports whether the pattern accepts exactly the whole input.
func (r *Regex) Match(input []byte) bool {
	if r.filter.Reject(input) {
		return false
	}
	return r.frozen.Match(input)
}

// MatchString is Match for strings.
func (r *Regex) MatchString(input string) bool {
	return r.Match([]byte(input))
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Frozen returns the underlying frozen tables, e.g. for serialization via
// MarshalBinary.
func (r *Regex) Frozen() *frozen.Frozen {
	return r.frozen
}

// Match compiles pattern and tests input in one call. For repeated
// matching compile once instead; this convenience rebuilds the whole
// pipeline every time.
func Match(pattern, input string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(input), nil
}

// QuoteMeta returns a pattern matching the literal text: every byte with
// operator meaning in this dialect is escaped, including '&', which the
// normalizer would otherwise read as an inserted concat marker.
func QuoteMeta(s string) string {
	const special = `\&|*+?()[]-`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
