package bbcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind defines the semantic kind of a Node.
type Kind int

const (
	KindText Kind = iota

	// inline styles
	KindBold
	KindItalic
	KindUnderline
	KindStrikethrough
	KindSuperscript
	KindSubscript
	KindSize
	KindColor
	KindBackground
	KindFont
	KindURL
	KindAnchor
	KindOfftop

	// blocks
	KindCenter
	KindLeft
	KindRight
	KindJustify
	KindList
	KindSpoiler
	KindQuote
	KindCode
	KindHide
	KindCurrentUser
	KindModerator
	KindStaff

	// pseudo-container leaves
	KindSnapback
	KindMergetime
	KindImage
	KindAttachment
	KindSmile

	// NumKinds is the total number of Node kinds. Should be placed as last const.
	NumKinds
)

var kindNames = [NumKinds]string{
	KindText:          "text",
	KindBold:          "bold",
	KindItalic:        "italic",
	KindUnderline:     "underline",
	KindStrikethrough: "strikethrough",
	KindSuperscript:   "superscript",
	KindSubscript:     "subscript",
	KindSize:          "size",
	KindColor:         "color",
	KindBackground:    "background",
	KindFont:          "font",
	KindURL:           "url",
	KindAnchor:        "anchor",
	KindOfftop:        "offtop",
	KindCenter:        "center",
	KindLeft:          "left",
	KindRight:         "right",
	KindJustify:       "justify",
	KindList:          "list",
	KindSpoiler:       "spoiler",
	KindQuote:         "quote",
	KindCode:          "code",
	KindHide:          "hide",
	KindCurrentUser:   "current_user",
	KindModerator:     "moderator",
	KindStaff:         "staff",
	KindSnapback:      "snapback",
	KindMergetime:     "mergetime",
	KindImage:         "image",
	KindAttachment:    "attachment",
	KindSmile:         "smile",
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// MarshalText lets Kind appear by name in JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// tagKinds maps every Tag to the Kind of the Node built from it.
var tagKinds = [NumTags]Kind{
	TagBold:          KindBold,
	TagItalic:        KindItalic,
	TagUnderline:     KindUnderline,
	TagStrikethrough: KindStrikethrough,
	TagSuperscript:   KindSuperscript,
	TagSubscript:     KindSubscript,
	TagSize:          KindSize,
	TagColor:         KindColor,
	TagBackground:    KindBackground,
	TagFont:          KindFont,
	TagURL:           KindURL,
	TagAnchor:        KindAnchor,
	TagOfftop:        KindOfftop,
	TagCenter:        KindCenter,
	TagLeft:          KindLeft,
	TagRight:         KindRight,
	TagJustify:       KindJustify,
	TagList:          KindList,
	TagSpoiler:       KindSpoiler,
	TagQuote:         KindQuote,
	TagCode:          KindCode,
	TagHide:          KindHide,
	TagCurrentUser:   KindCurrentUser,
	TagModerator:     KindModerator,
	TagStaff:         KindStaff,
	TagMergetime:     KindMergetime,
	TagSnapback:      KindSnapback,
	TagImage:         KindImage,
	TagAttachment:    KindAttachment,
	TagSmile:         KindSmile,
}

// Node is an element of the parsed tree.
//
// Which fields are meaningful depends on the Kind:
//   - KindText: Payload.
//   - inline and block kinds: Children, and Attr where the tag takes one
//     (color token, font name, URL, quote author, spoiler title, code language).
//     KindSize also has Size, KindList has List.
//   - pseudo-container leaves: Payload, taken from the only text child of the tag.
//     KindAttachment also has Attachment, KindSmile has Smile.
//
// Nodes are never modified once the parse is done.
type Node[T Text[T]] struct {
	Kind       Kind       `json:"kind" yaml:"kind"`
	Attr       T          `json:"attr,omitzero" yaml:"attr,omitempty"`
	Size       int        `json:"size,omitempty" yaml:"size,omitempty"`
	List       ListKind   `json:"list,omitempty" yaml:"list,omitempty"`
	Payload    T          `json:"payload,omitzero" yaml:"payload,omitempty"`
	Attachment Attachment `json:"attachment,omitzero" yaml:"attachment,omitempty"`
	Smile      string     `json:"smile,omitempty" yaml:"smile,omitempty"`
	Children   []Node[T]  `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewText creates a text Node.
func NewText[T Text[T]](payload T) Node[T] {
	return Node[T]{Kind: KindText, Payload: payload}
}

// NewNode maps the Tag, its attribute and the parsed children to the Node of the right Kind.
//
// It returns [ErrNoNodeForTag] for an unknown Tag, [*AttributeError] for the [list] with
// an attribute outside of the allowed set, and [*ContractError] for a pseudo-container Tag
// whose first child is missing or is not a text.
func NewNode[T Text[T]](tag Tag, attr T, children []Node[T]) (Node[T], error) {
	if tag <= TagNone || tag >= NumTags {
		return Node[T]{}, fmt.Errorf("%w: %d", ErrNoNodeForTag, tag)
	}

	kind := tagKinds[tag]

	if tag.IsPseudoContainer() {
		if len(children) == 0 {
			return Node[T]{}, &ContractError{Tag: tag, Reason: "payload child is missing"}
		}

		first := children[0]
		if first.Kind != KindText {
			return Node[T]{}, &ContractError{
				Tag:    tag,
				Reason: "first child is " + first.Kind.String() + ", not text",
			}
		}

		n := Node[T]{
			Kind:    kind,
			Attr:    unquote(attr),
			Payload: trimSpace(first.Payload),
		}

		if tag == TagAttachment {
			n.Payload = first.Payload
			n.Attachment = ParseAttachmentRef(first.Payload.String())
		}

		return n, nil
	}

	n := Node[T]{
		Kind:     kind,
		Attr:     unquote(attr),
		Children: children,
	}

	switch tag {
	case TagSize:
		// an invalid size keeps 0, which means "default" to the renderer
		n.Size, _ = strconv.Atoi(strings.TrimSpace(n.Attr.String()))

	case TagList:
		k, ok := ParseListKind(attr.String())
		if !ok {
			return Node[T]{}, &AttributeError{Tag: tag, Value: attr.String()}
		}
		n.List = k
	}

	return n, nil
}

// IsText reports whether the Node is a plain text leaf.
func (n Node[T]) IsText() bool {
	return n.Kind == KindText
}

// IsInline reports whether the Node is an inline style wrapper.
func (n Node[T]) IsInline() bool {
	return n.Kind >= KindBold && n.Kind <= KindOfftop
}

// IsBlock reports whether the Node starts its own block in the layout.
func (n Node[T]) IsBlock() bool {
	return n.Kind >= KindCenter && n.Kind <= KindStaff
}

// IsTextable reports whether the Node flows within the text line: plain text, inline styles,
// emoticons, post references and merge markers.
func (n Node[T]) IsTextable() bool {
	switch n.Kind {
	case KindText, KindSmile, KindSnapback, KindMergetime:
		return true
	}
	return n.IsInline()
}

// IsMedia reports whether the Node is displayed as a standalone media element.
func (n Node[T]) IsMedia() bool {
	return n.Kind == KindImage || n.Kind == KindAttachment
}

// IsEmptyText reports whether the Node is a text consisting of white space only.
func (n Node[T]) IsEmptyText() bool {
	return n.Kind == KindText && strings.TrimSpace(n.Payload.String()) == ""
}

// StartsWithSpace reports whether the Node is a text beginning with a space.
func (n Node[T]) StartsWithSpace() bool {
	return n.Kind == KindText && strings.HasPrefix(n.Payload.String(), " ")
}

// StartsWithNewline reports whether the Node is a text beginning with a line break.
func (n Node[T]) StartsWithNewline() bool {
	if n.Kind != KindText {
		return false
	}
	s := n.Payload.String()
	return strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r\n")
}

// HasOnlyOneSpace reports whether the Node is a text of exactly one space.
func (n Node[T]) HasOnlyOneSpace() bool {
	return n.Kind == KindText && n.Payload.String() == " "
}

// PlainText returns the text of the Node and all its descendants without any markup.
func (n Node[T]) PlainText() string {
	var b strings.Builder
	n.writePlain(&b)
	return b.String()
}

func (n Node[T]) writePlain(b *strings.Builder) {
	if len(n.Children) == 0 {
		b.WriteString(n.Payload.String())
		return
	}

	for _, c := range n.Children {
		c.writePlain(b)
	}
}

// PlainTextOf concatenates [Node.PlainText] of every node.
func PlainTextOf[T Text[T]](nodes []Node[T]) string {
	var b strings.Builder
	for _, n := range nodes {
		n.writePlain(&b)
	}
	return b.String()
}

// trimSpace cuts the surrounding white space of the payload.
func trimSpace[T Text[T]](t T) T {
	s := t.String()
	start := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
	end := len(strings.TrimRight(s, " \t\r\n"))

	if start >= end {
		return t.Slice(0, 0)
	}

	return t.Slice(start, end)
}

// unquote cuts the surrounding white space and one pair of surrounding quotes of the attribute.
func unquote[T Text[T]](t T) T {
	t = trimSpace(t)
	s := t.String()

	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'') && s[len(s)-1] == q {
			return t.Slice(1, len(s)-1)
		}
	}

	return t
}
