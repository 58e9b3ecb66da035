package bbcode

import (
	"errors"
	"fmt"
)

// ErrNoNodeForTag is returned by [NewNode] when the Tag has no corresponding Node kind.
var ErrNoNodeForTag = errors.New("no node kind for tag")

// ConfigError describes an error which occures during the configuration of the parser, like negative [Limits].
type ConfigError struct {
	Issue Issue // Issue is a kind or the problem occured.
	Err   error // Err contains original error created during some configuration process.
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Issue, e.Err)
}

// NewConfigError is a factory function for creating a *ConfigError.
func NewConfigError(issue Issue, err error) *ConfigError {
	return &ConfigError{
		Issue: issue,
		Err:   err,
	}
}

// ContractError reports a broken agreement between the tokenizer and the tree builder:
// a pseudo-container Node was requested without the text payload as its first child.
//
// It never depends on the user's markup. Seeing one means there is a bug in this package
// or in a caller constructing Nodes by hand.
type ContractError struct {
	Tag    Tag
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("bbcode: contract violation for tag %q: %s", e.Tag, e.Reason)
}

// AttributeError reports an attribute value which is outside of the closed set allowed
// for the Tag, like [list=x].
type AttributeError struct {
	Tag   Tag
	Value string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("invalid attribute %q for tag %q", e.Value, e.Tag)
}
