package bbcode

import (
	"strings"
	"unicode/utf8"
)

// Tokenizer transforms the markup into the sequence of Tokens, one Token per [Tokenizer.Next] call.
//
// The Tokenizer is single-pass: it cannot be rewound, create a new one to start over.
// It is not safe for concurrent use.
type Tokenizer[T Text[T]] struct {
	input T

	// src is the plain projection of the input, all positions point into it
	src string

	// pos is the index of the first byte not yet consumed
	pos int

	// queue holds Tokens which were already recognized, but not yet returned.
	// Tags with opaque bodies produce 3 Tokens at once.
	queue []Token[T]

	// unclosed marks the opaque Tags whose closing tag is known to be absent
	// from the rest of the input
	unclosed [NumTags]bool

	opts Options
}

// NewTokenizer creates new [Tokenizer] for the input.
func NewTokenizer[T Text[T]](input T, opts ...Option) *Tokenizer[T] {
	return newTokenizer(input, newOptions(opts))
}

func newTokenizer[T Text[T]](input T, opts Options) *Tokenizer[T] {
	return &Tokenizer[T]{
		input: input,
		src:   input.String(),
		opts:  opts,
	}
}

// Next returns the next Token and true, or the zero Token and false when the input is exhausted.
func (t *Tokenizer[T]) Next() (Token[T], bool) {
	if len(t.queue) > 0 {
		tok := t.queue[0]
		t.queue = t.queue[1:]
		return tok, true
	}

	if t.pos >= len(t.src) {
		return Token[T]{}, false
	}

	if t.src[t.pos] == '[' {
		return t.scanTag(), true
	}

	return t.scanText(), true
}

// text creates the text Token from the [start, end) part of the input.
func (t *Tokenizer[T]) text(start, end int) Token[T] {
	return Token[T]{
		Type: TokenText,
		Raw:  t.input.Slice(start, end),
		Pos:  start,
	}
}

// scanText consumes plain text until the next '[' or a recognized emoticon.
func (t *Tokenizer[T]) scanText() Token[T] {
	start := t.pos
	n := len(t.src)
	limit := t.opts.Limits.MaxSmileChecks
	checked := 0

	i := start
	for ; i < n; i++ {
		c := t.src[i]

		if c == '[' {
			break
		}

		if c != ':' {
			continue
		}

		if checked >= limit {
			if checked == limit {
				t.opts.Warnings.add(IssueSmileChecksExhausted, i,
					"more than %d emoticon candidates in a row, the rest is plain text", limit)
				checked++
			}
			continue
		}

		smile, ok := t.opts.Smiles.Match(t.src, i)
		if !ok {
			checked++
			continue
		}

		// the emoticon starts the run, so it's emitted right away
		if i == start {
			end := i + len(smile.Code)
			code := t.input.Slice(i, end)
			t.pos = end

			return Token[T]{
				Type:    TokenOpeningTag,
				Tag:     TagSmile,
				Attr:    code,
				HasAttr: true,
				Raw:     code,
				Pos:     i,
			}
		}

		// otherwise flush the text first, the emoticon is picked up by the next call
		break
	}

	t.pos = i
	return t.text(start, i)
}

// scanTag processes the sequence starting with '['. If the sequence is not a valid tag,
// the scanned part is returned as a text Token.
func (t *Tokenizer[T]) scanTag() Token[T] {
	if t.pos+1 < len(t.src) && t.src[t.pos+1] == '/' {
		return t.scanClosingTag()
	}

	return t.scanOpeningTag()
}

// scanName moves forward from the index from until one of the symbols which can end
// a tag name. It returns the index of that symbol, or the length of the input, and
// true when the name is longer than [Limits.MaxTagNameLen].
func (t *Tokenizer[T]) scanName(from int) (int, bool) {
	limit := t.opts.Limits.MaxTagNameLen

	i := from
	for ; i < len(t.src); i++ {
		switch t.src[i] {
		case ']', '=', '[', '\n':
			return i, false
		}

		if i-from >= limit {
			// never cut the text in the middle of a rune
			for i > from && !utf8.RuneStart(t.src[i]) {
				i--
			}
			return i, true
		}
	}

	return i, false
}

func (t *Tokenizer[T]) scanClosingTag() Token[T] {
	start := t.pos
	n := len(t.src)

	i, tooLong := t.scanName(start + 2)

	if i >= n {
		t.opts.Warnings.add(IssueUnexpectedEOL, start, "closing tag is not terminated with ']'")
		t.pos = n
		return t.text(start, n)
	}

	if tooLong {
		t.opts.Warnings.add(IssueTagNameTooLong, start,
			"tag name is longer than %d bytes", t.opts.Limits.MaxTagNameLen)
		t.pos = i
		return t.text(start, i)
	}

	if t.src[i] != ']' {
		t.pos = i
		return t.text(start, i)
	}

	end := i + 1
	name := t.src[start+2 : i]
	t.pos = end

	tag, ok := LookupTag(name)
	if !ok || !tag.IsContainer() {
		t.opts.Warnings.add(IssueUnknownTag, start, "unknown closing tag %q", name)
		return t.text(start, end)
	}

	return Token[T]{
		Type: TokenClosingTag,
		Tag:  tag,
		Raw:  t.input.Slice(start, end),
		Pos:  start,
	}
}

func (t *Tokenizer[T]) scanOpeningTag() Token[T] {
	start := t.pos
	n := len(t.src)

	i, tooLong := t.scanName(start + 1)

	if i >= n {
		t.opts.Warnings.add(IssueUnexpectedEOL, start, "tag is not terminated with ']'")
		t.pos = n
		return t.text(start, n)
	}

	if tooLong {
		t.opts.Warnings.add(IssueTagNameTooLong, start,
			"tag name is longer than %d bytes", t.opts.Limits.MaxTagNameLen)
		t.pos = i
		return t.text(start, i)
	}

	name := t.src[start+1 : i]
	stop := t.src[i]

	tag, ok := LookupTag(name)

	if !ok || stop == '[' || stop == '\n' {
		// keep the closing bracket with the text, so the sequence is reproduced as is
		if stop == ']' {
			if name != listItemName {
				t.opts.Warnings.add(IssueUnknownTag, start, "unknown tag %q", name)
			}
			t.pos = i + 1
			return t.text(start, i+1)
		}

		// do not consume the symbol which stopped the scan, it can start something valid
		t.pos = i
		return t.text(start, i)
	}

	tok := Token[T]{
		Type: TokenOpeningTag,
		Tag:  tag,
		Pos:  start,
	}

	if stop == ']' {
		tok.Raw = t.input.Slice(start, i+1)
		t.pos = i + 1
		return t.afterOpening(tok)
	}

	// stop is '=', the attribute follows
	attrStart := i + 1

	var attrEnd int
	if tag.AttributeNests() {
		attrEnd = balancedEnd(t.src, attrStart)
	} else {
		attrEnd = strings.IndexByte(t.src[attrStart:], ']')
		if attrEnd >= 0 {
			attrEnd += attrStart
		}
	}

	if attrEnd < 0 {
		t.opts.Warnings.add(IssueUnexpectedEOL, start, "attribute of tag %q is not terminated with ']'", name)
		t.pos = n
		return t.text(start, n)
	}

	tok.Attr = t.input.Slice(attrStart, attrEnd)
	tok.HasAttr = true
	tok.Raw = t.input.Slice(start, attrEnd+1)
	t.pos = attrEnd + 1

	return t.afterOpening(tok)
}

// afterOpening handles the Tags with opaque bodies. The body up to the closing tag is queued
// as a single text Token, even an empty one, followed by the closing Token. If the closing tag
// is missing, the opening one is returned as a plain text.
func (t *Tokenizer[T]) afterOpening(tok Token[T]) Token[T] {
	if tok.Tag.CanContainTags() || !tok.Tag.IsContainer() {
		return tok
	}

	closing := "[/" + tok.Tag.String() + "]"

	k := -1
	if !t.unclosed[tok.Tag] {
		k = indexFoldASCII(t.src[t.pos:], closing)
	}
	if k < 0 {
		// the position only grows, so the closing tag won't appear later either
		t.unclosed[tok.Tag] = true
		t.opts.Warnings.add(IssueUnclosedTag, tok.Pos, "tag %q is never closed", tok.Tag)
		return t.text(tok.Pos, t.pos)
	}

	bodyStart := t.pos
	bodyEnd := bodyStart + k
	closeEnd := bodyEnd + len(closing)

	t.queue = append(t.queue,
		t.text(bodyStart, bodyEnd),
		Token[T]{
			Type: TokenClosingTag,
			Tag:  tok.Tag,
			Raw:  t.input.Slice(bodyEnd, closeEnd),
			Pos:  bodyEnd,
		},
	)

	t.pos = closeEnd

	return tok
}

// balancedEnd returns the index of the first ']' which is not balanced by a preceding '['
// starting from the index from, or -1 if there is none.
func balancedEnd(src string, from int) int {
	depth := 0

	for j := from; j < len(src); j++ {
		switch src[j] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return j
			}
		}
	}

	return -1
}

// indexFoldASCII is strings.Index with ASCII case folding. The sub must be ASCII.
func indexFoldASCII(s, sub string) int {
	m := len(sub)

	for i := 0; i+m <= len(s); i++ {
		if equalFoldASCII(s[i:i+m], sub) {
			return i
		}
	}

	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(b); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
