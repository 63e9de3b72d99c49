package frozen_test

import (
	"fmt"

	"github.com/coregx/frozenregex/dfa/frozen"
)

func ExampleFreezePattern() {
	f, err := frozen.FreezePattern("(a|b)*ab", frozen.DefaultConfig())
	if err != nil {
		panic(err)
	}
	fmt.Println(f.MatchString("ababab"))
	fmt.Println(f.MatchString("abababa"))
	// Output:
	// true
	// false
}

func ExampleFrozen_MarshalBinary() {
	f, err := frozen.FreezePattern("[0-9]+", frozen.DefaultConfig().WithPreIndex(true))
	if err != nil {
		panic(err)
	}

	// The artifact can be written to disk at build time and loaded
	// later without re-running the pipeline.
	data, err := f.MarshalBinary()
	if err != nil {
		panic(err)
	}

	var g frozen.Frozen
	if err := g.UnmarshalBinary(data); err != nil {
		panic(err)
	}
	fmt.Println(g.MatchString("12345"))
	fmt.Println(g.MatchString("12a45"))
	// Output:
	// true
	// false
}
