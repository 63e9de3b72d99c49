package frozen

// DefaultAlphabetSize covers the printable ASCII range; every accepted
// pattern byte must be below the alphabet size.
const DefaultAlphabetSize = 128

// Config controls how a DFA is frozen into tables.
type Config struct {
	// PreIndex bakes the byte→column index table into the frozen value.
	// Matching then touches no heap at all; the cost is AlphabetSize
	// bytes carried per frozen DFA. When false, each Match call builds
	// the index table in a small scratch allocation.
	//
	// Default: false
	PreIndex bool

	// AlphabetSize is the size of the byte→column index table. Accepted
	// bytes are mapped by value modulo AlphabetSize, so every byte used
	// by the pattern must be below it or freezing fails. 128 covers
	// ASCII; raise to 256 for arbitrary bytes.
	//
	// Default: 128
	AlphabetSize int
}

// DefaultConfig returns the default freezing configuration.
func DefaultConfig() Config {
	return Config{
		PreIndex:     false,
		AlphabetSize: DefaultAlphabetSize,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.AlphabetSize < 1 || c.AlphabetSize > 256 {
		return &FreezeError{
			Kind:    InvalidConfig,
			Message: "AlphabetSize must be in range [1, 256]",
		}
	}
	return nil
}

// WithPreIndex returns a copy of the config with pre-indexing set.
func (c Config) WithPreIndex(pre bool) Config {
	c.PreIndex = pre
	return c
}

// WithAlphabetSize returns a copy of the config with the alphabet size set.
func (c Config) WithAlphabetSize(size int) Config {
	c.AlphabetSize = size
	return c
}
