package nfa

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"empty", "", ""},
		{"single", "a", "a"},
		{"concat", "ab|c", "a&b|c"},
		{"after closure", "a*c", "a*&c"},
		{"after group", "(a)b", "(a)&b"},
		{"before group", "a(ab)", "a&(a&b)"},
		{"no insert after union", "a|b", "a|b"},
		{"no insert after open", "(ab)", "(a&b)"},
		{"postfix chain", "a+b?c", "a+&b?&c"},
		{"class atom", "[abc]", "[abc]"},
		{"class untouched inside", "a[b-d]e", "a&[b-d]&e"},
		{"class then postfix", "[a-z]+", "[a-z]+"},
		{"escape glues", `a\*b`, `a&\*&b`},
		{"escape at start", `\*`, `\*`},
		{"escaped escape", `\\a`, `\\&a`},
		{"escaped open paren is plain", `\(a`, `\(&a`},
		{"escape inside class", `[\]]a`, `[\]]&a`},
		{"escaped letter mid pattern", `a\bc`, `a&\b&c`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.pattern); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}
