package bbcode

import (
	"errors"
	"fmt"
)

// frame is an opened container tag waiting for its closing counterpart.
type frame[T Text[T]] struct {
	tag      Tag
	attr     T
	raw      T
	pos      int
	children []Node[T]
}

// builder assembles the tree from the Token stream. Instead of descending recursively
// per opening tag it keeps the open tags on an explicit stack, so the depth of the markup
// never affects the call stack.
type builder[T Text[T]] struct {
	tok   *Tokenizer[T]
	opts  Options
	root  []Node[T]
	stack []*frame[T]

	// tooDeep counts the opening tags kept as text because of the depth limit,
	// their closing tags are kept as text as well
	tooDeep [NumTags]int
}

// Parse transforms the markup into the list of Nodes.
//
// Malformed markup never fails the parse: unmatched, unknown or misplaced tags are kept
// as literal text and reported to [Options.Warnings]. The only errors are [*ConfigError]
// for invalid options and [*ContractError] for the broken invariant of pseudo-container
// Nodes, which means a bug rather than a bad input.
func Parse[T Text[T]](input T, opts ...Option) ([]Node[T], error) {
	o := newOptions(opts)
	if err := o.Limits.Validate(); err != nil {
		return nil, err
	}

	b := &builder[T]{
		tok:  newTokenizer(input, o),
		opts: o,
	}

	return b.build()
}

// ParsePlain is [Parse] for the plain string input.
func ParsePlain(input string, opts ...Option) ([]Node[PlainText], error) {
	return Parse(PlainText(input), opts...)
}

// ParseRich is [Parse] for the rich text input.
func ParseRich(input RichText, opts ...Option) ([]Node[RichText], error) {
	return Parse(input, opts...)
}

// MustParse is like [Parse] but panics if the markup cannot be parsed.
// It's intended for tests and the input known in advance.
func MustParse[T Text[T]](input T, opts ...Option) []Node[T] {
	nodes, err := Parse(input, opts...)
	if err != nil {
		panic(err)
	}
	return nodes
}

func (b *builder[T]) build() ([]Node[T], error) {
	for {
		tok, ok := b.tok.Next()
		if !ok {
			break
		}

		var err error

		switch tok.Type {
		case TokenText:
			b.append(NewText(tok.Raw))
		case TokenOpeningTag:
			err = b.open(tok)
		case TokenClosingTag:
			err = b.close(tok)
		}

		if err != nil {
			return nil, err
		}
	}

	// whatever is still open was never closed
	for len(b.stack) > 0 {
		top := b.pop()
		b.opts.Warnings.add(IssueUnclosedTag, top.pos, "tag %q is never closed", top.tag)
		b.demote(top)
	}

	return b.root, nil
}

func (b *builder[T]) open(tok Token[T]) error {
	if tok.Tag.IsSelfClosing() {
		return b.selfClosing(tok)
	}

	if len(b.stack) >= b.opts.Limits.MaxDepth {
		b.opts.Warnings.add(IssueNestingTooDeep, tok.Pos,
			"tag %q is nested deeper than %d levels", tok.Tag, b.opts.Limits.MaxDepth)
		b.tooDeep[tok.Tag]++
		b.append(NewText(tok.Raw))
		return nil
	}

	b.stack = append(b.stack, &frame[T]{
		tag:  tok.Tag,
		attr: tok.Attr,
		raw:  tok.Raw,
		pos:  tok.Pos,
	})

	return nil
}

// selfClosing builds the pseudo-container Node right away, the attribute is its payload.
func (b *builder[T]) selfClosing(tok Token[T]) error {
	if !tok.HasAttr {
		b.opts.Warnings.add(IssueMissingAttribute, tok.Pos, "tag %q requires an attribute", tok.Tag)
		b.append(NewText(tok.Raw))
		return nil
	}

	n, err := NewNode(tok.Tag, tok.Attr.Slice(0, 0), []Node[T]{NewText(tok.Attr)})
	if err != nil {
		return b.reject(err, tok.Pos, func() { b.append(NewText(tok.Raw)) })
	}

	switch {
	case n.Kind == KindSmile:
		n.Smile, _ = b.opts.Smiles.Resource(tok.Attr.String())
	case n.Kind == KindAttachment && b.opts.attachments != nil:
		b.opts.attachments.resolve(&n.Attachment, tok.Pos, b.opts.Warnings)
	}

	b.append(n)
	return nil
}

func (b *builder[T]) close(tok Token[T]) error {
	if b.tooDeep[tok.Tag] > 0 {
		b.tooDeep[tok.Tag]--
		b.append(NewText(tok.Raw))
		return nil
	}

	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].tag == tok.Tag {
			idx = i
			break
		}
	}

	if idx < 0 {
		b.opts.Warnings.add(IssueMisplacedClosingTag, tok.Pos, "closing tag %q has no opening one", tok.Tag)
		b.append(NewText(tok.Raw))
		return nil
	}

	// everything opened after the match loses its tag
	for len(b.stack)-1 > idx {
		top := b.pop()
		b.opts.Warnings.add(IssueMisnestedTag, top.pos,
			"tag %q is closed by the outer %q", top.tag, tok.Tag)
		b.demote(top)
	}

	f := b.pop()

	n, err := NewNode(f.tag, f.attr, f.children)
	if err != nil {
		return b.reject(err, f.pos, func() {
			b.demote(f)
			b.append(NewText(tok.Raw))
		})
	}

	b.append(n)
	return nil
}

// reject separates the fatal errors from the ones which only turn the markup into text.
func (b *builder[T]) reject(err error, pos int, literal func()) error {
	var contractErr *ContractError
	if errors.As(err, &contractErr) {
		return err
	}

	var attrErr *AttributeError
	if errors.As(err, &attrErr) {
		b.opts.Warnings.add(IssueInvalidAttribute, pos, "%v", attrErr)
		literal()
		return nil
	}

	return fmt.Errorf("build node at %d: %w", pos, err)
}

// demote moves the raw opening markup of the frame and its children to the parent level,
// keeping them in the source order.
func (b *builder[T]) demote(f *frame[T]) {
	b.append(NewText(f.raw))
	for _, c := range f.children {
		b.append(c)
	}
}

func (b *builder[T]) pop() *frame[T] {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return top
}

func (b *builder[T]) append(n Node[T]) {
	if len(b.stack) == 0 {
		b.root = append(b.root, n)
		return
	}

	top := b.stack[len(b.stack)-1]
	top.children = append(top.children, n)
}
