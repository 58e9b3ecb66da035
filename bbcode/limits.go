package bbcode

import "fmt"

const (
	DefaultMaxTagNameLen  = 16
	DefaultMaxDepth       = 64
	DefaultMaxSmileChecks = 160
)

// Limits define upper bounds used during tokenization and parsing to prevent excessive scanning
// of the untrusted markup. Zero value means "use the default".
type Limits struct {

	// MaxTagNameLen defines the maximum number of bytes scanned for a tag name
	// after the '[' symbol. Longer sequences are kept as plain text.
	//
	// Measured in bytes, not UTF-8 runes.
	MaxTagNameLen int

	// MaxDepth defines the deepest nesting of container tags. Opening tags past the
	// limit are kept as plain text, together with their closing tags.
	MaxDepth int

	// MaxSmileChecks defines how many ':' symbols in a single text run are checked
	// against the emoticon table before the rest of the run is considered plain text.
	MaxSmileChecks int
}

// Validate checks if the limits are not negative.
// Return [ConfigError] if at least on of the values is negative.
func (l Limits) Validate() error {

	values := [3]int{
		l.MaxTagNameLen,
		l.MaxDepth,
		l.MaxSmileChecks,
	}

	names := [3]string{
		"MaxTagNameLen",
		"MaxDepth",
		"MaxSmileChecks",
	}

	for i := range values {
		if values[i] < 0 {
			err := fmt.Errorf("%s must be >= 0, got %d", names[i], values[i])
			return NewConfigError(IssueNegativeLimit, err)
		}
	}

	return nil
}

// withDefaults replaces zero values with the package defaults.
func (l Limits) withDefaults() Limits {
	if l.MaxTagNameLen == 0 {
		l.MaxTagNameLen = DefaultMaxTagNameLen
	}
	if l.MaxDepth == 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxSmileChecks == 0 {
		l.MaxSmileChecks = DefaultMaxSmileChecks
	}
	return l
}
