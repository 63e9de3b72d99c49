// Command dfagen compiles regex patterns into frozen DFA tables at build
// time.
//
// It emits either a Go source file with the tables as literals, intended
// to be checked in via go:generate, or one binary artifact per pattern for
// loading with Frozen.UnmarshalBinary.
//
// A single pattern from flags:
//
//	dfagen -name Identifier -p '[a-z][a-z0-9]*' -o identifier_tables.go
//
// or a YAML manifest of several:
//
//	dfagen -manifest patterns.yaml -o tables.go
//
// where the manifest looks like:
//
//	package: patterns
//	patterns:
//	  - name: Identifier
//	    pattern: "[a-z][a-z0-9]*"
//	  - name: Number
//	    pattern: "[0-9]+"
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/coregx/frozenregex/dfa/frozen"
	"github.com/coregx/frozenregex/dfa/full"
	"github.com/coregx/frozenregex/nfa"
)

var (
	patternFlag  string
	nameFlag     string
	manifestFlag string
	outFlag      string
	formatFlag   string
	pkgFlag      string
	preIndexFlag bool
	alphabetFlag int
)

func init() {
	flag.StringVar(&patternFlag, "p", "", "pattern to compile (alternative to -manifest)")
	flag.StringVar(&nameFlag, "name", "", "Go identifier for the generated variable (with -p)")
	flag.StringVar(&manifestFlag, "manifest", "", "YAML manifest of patterns")
	flag.StringVar(&outFlag, "o", "", "output file (go) or directory (bin); default stdout")
	flag.StringVar(&formatFlag, "format", "go", "output format: go or bin")
	flag.StringVar(&pkgFlag, "pkg", "", "package name for generated Go source (overrides manifest)")
	flag.BoolVar(&preIndexFlag, "pre-index", false, "bake the byte index table into the tables")
	flag.IntVar(&alphabetFlag, "alphabet-size", frozen.DefaultAlphabetSize, "alphabet size (128 for ASCII, 256 for any byte)")
}

// Manifest is the YAML input: a target package name and the patterns to
// freeze. Per-pattern settings default to the command-line flags.
type Manifest struct {
	Package  string  `json:"package,omitempty"`
	Patterns []Entry `json:"patterns"`
}

// Entry is one pattern in a manifest.
type Entry struct {
	Name         string `json:"name"`
	Pattern      string `json:"pattern"`
	PreIndex     *bool  `json:"preIndex,omitempty"`
	AlphabetSize *int   `json:"alphabetSize,omitempty"`
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dfagen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	if len(m.Patterns) == 0 {
		return fmt.Errorf("nothing to do: pass -p or -manifest")
	}

	type compiled struct {
		entry  Entry
		frozen *frozen.Frozen
	}
	results := make([]compiled, 0, len(m.Patterns))
	for _, e := range m.Patterns {
		if e.Name == "" {
			return fmt.Errorf("pattern %q has no name", e.Pattern)
		}
		if !validIdent(e.Name) {
			return fmt.Errorf("name %q is not a valid Go identifier", e.Name)
		}
		cfg := frozen.Config{
			PreIndex:     preIndexFlag,
			AlphabetSize: alphabetFlag,
		}
		if e.PreIndex != nil {
			cfg.PreIndex = *e.PreIndex
		}
		if e.AlphabetSize != nil {
			cfg.AlphabetSize = *e.AlphabetSize
		}
		n, err := nfa.Parse(e.Pattern)
		if err != nil {
			return fmt.Errorf("pattern %s: %w", e.Name, err)
		}
		f, err := frozen.Freeze(full.Build(n), cfg)
		if err != nil {
			return fmt.Errorf("pattern %s: %w", e.Name, err)
		}
		results = append(results, compiled{entry: e, frozen: f})
	}

	switch formatFlag {
	case "bin":
		if outFlag == "" {
			return fmt.Errorf("-format bin requires -o output directory")
		}
		if err := os.MkdirAll(outFlag, 0o755); err != nil {
			return err
		}
		for _, r := range results {
			data, err := r.frozen.MarshalBinary()
			if err != nil {
				return fmt.Errorf("pattern %s: %w", r.entry.Name, err)
			}
			path := filepath.Join(outFlag, r.entry.Name+".fzdf")
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
		}
		return nil
	case "go":
		var b strings.Builder
		writeHeader(&b, m.Package)
		for _, r := range results {
			writeVar(&b, r.entry, r.frozen)
		}
		writeFooter(&b)
		if outFlag == "" {
			_, err := os.Stdout.WriteString(b.String())
			return err
		}
		return os.WriteFile(outFlag, []byte(b.String()), 0o644)
	default:
		return fmt.Errorf("unknown format %q", formatFlag)
	}
}

// loadManifest builds the work list from -manifest or the -p/-name pair.
func loadManifest() (*Manifest, error) {
	if manifestFlag != "" {
		if patternFlag != "" {
			return nil, fmt.Errorf("-p and -manifest are mutually exclusive")
		}
		data, err := os.ReadFile(manifestFlag)
		if err != nil {
			return nil, err
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", manifestFlag, err)
		}
		if pkgFlag != "" {
			m.Package = pkgFlag
		}
		if m.Package == "" {
			m.Package = "patterns"
		}
		return &m, nil
	}
	m := &Manifest{Package: pkgFlag}
	if m.Package == "" {
		m.Package = "patterns"
	}
	if patternFlag != "" {
		name := nameFlag
		if name == "" {
			name = "Pattern"
		}
		m.Patterns = []Entry{{Name: name, Pattern: patternFlag}}
	}
	return m, nil
}

func writeHeader(b *strings.Builder, pkg string) {
	fmt.Fprintf(b, "// Code generated by dfagen. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n\n", pkg)
	fmt.Fprintf(b, "import \"github.com/coregx/frozenregex/dfa/frozen\"\n\n")
}

func writeVar(b *strings.Builder, e Entry, f *frozen.Frozen) {
	fmt.Fprintf(b, "// %s is the frozen DFA for pattern %q.\n", e.Name, e.Pattern)
	fmt.Fprintf(b, "var %s = mustFrozen(frozen.NewFromTables(\n", e.Name)

	fmt.Fprintf(b, "\t%s,\n", byteSlice(f.Chars()))

	if idx := f.IndexTable(); idx != nil {
		fmt.Fprintf(b, "\t%s,\n", uint8Slice(idx))
	} else {
		fmt.Fprintf(b, "\tnil,\n")
	}

	fmt.Fprintf(b, "\t[][]uint16{\n")
	for _, row := range f.Transitions() {
		fmt.Fprintf(b, "\t\t%s,\n", uint16Slice(row))
	}
	fmt.Fprintf(b, "\t},\n")

	fmt.Fprintf(b, "\t%s,\n", boolSlice(f.Accepting()))
	fmt.Fprintf(b, "\t%d,\n", f.AlphabetSize())
	fmt.Fprintf(b, "))\n\n")
}

func writeFooter(b *strings.Builder) {
	fmt.Fprintf(b, "func mustFrozen(f *frozen.Frozen, err error) *frozen.Frozen {\n")
	fmt.Fprintf(b, "\tif err != nil {\n\t\tpanic(err)\n\t}\n\treturn f\n}\n")
}

func byteSlice(v []byte) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("0x%02x", x)
	}
	return "[]byte{" + strings.Join(parts, ", ") + "}"
}

func uint8Slice(v []uint8) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return "[]uint8{" + strings.Join(parts, ", ") + "}"
}

func uint16Slice(v []uint16) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func boolSlice(v []bool) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%v", x)
	}
	return "[]bool{" + strings.Join(parts, ", ") + "}"
}

// validIdent checks that name can be used as an exported or unexported Go
// identifier in generated source.
func validIdent(name string) bool {
	for i, r := range name {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}
