package bbcode

// TokenType defines the kind of the Token.
type TokenType int

const (
	TokenText TokenType = iota
	TokenOpeningTag
	TokenClosingTag
)

// Token is the result of the first stage processing of a part of the input.
type Token[T Text[T]] struct {
	// Type defines the type of the Token: opening tag, closing tag or plain text.
	Type TokenType

	// Tag is the recognized Tag. It is [TagNone] for the text Tokens.
	Tag Tag

	// Attr is the value written after '=' in the opening tag, e.g. "red" in [color=red].
	// For the emoticon Tokens it is the matched code.
	Attr T

	// HasAttr is true when the opening tag had the '=' part, even an empty one.
	HasAttr bool

	// Raw is the exact part of the input covered by the Token, including brackets.
	// For text Tokens it's the text itself.
	//
	// Raw is used to reproduce the markup literally when the tag cannot be matched.
	Raw T

	// Pos defines the starting byte position of the Token in the input.
	Pos int
}

// Width is the count of bytes covered by the Token in the input.
func (t Token[T]) Width() int {
	return len(t.Raw.String())
}
