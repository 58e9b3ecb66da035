package bbcode

import "strings"

// Tag identifies one of the recognized BBCode markup tags.
type Tag int

const (
	TagNone Tag = iota
	TagBold
	TagItalic
	TagUnderline
	TagStrikethrough
	TagSuperscript
	TagSubscript
	TagSize
	TagColor
	TagBackground
	TagFont
	TagURL
	TagAnchor
	TagOfftop
	TagCenter
	TagLeft
	TagRight
	TagJustify
	TagList
	TagSpoiler
	TagQuote
	TagCode
	TagHide
	TagCurrentUser
	TagModerator
	TagStaff
	TagMergetime
	TagSnapback
	TagImage
	TagAttachment

	// TagSmile has no source name. It is only produced by the emoticon scanner.
	TagSmile

	// NumTags is the total number of Tags. Should be placed as last const.
	NumTags
)

// tagNames maps each Tag to the name used in the markup.
var tagNames = [NumTags]string{
	TagBold:          "b",
	TagItalic:        "i",
	TagUnderline:     "u",
	TagStrikethrough: "s",
	TagSuperscript:   "sup",
	TagSubscript:     "sub",
	TagSize:          "size",
	TagColor:         "color",
	TagBackground:    "background",
	TagFont:          "font",
	TagURL:           "url",
	TagAnchor:        "anchor",
	TagOfftop:        "offtop",
	TagCenter:        "center",
	TagLeft:          "left",
	TagRight:         "right",
	TagJustify:       "justify",
	TagList:          "list",
	TagSpoiler:       "spoiler",
	TagQuote:         "quote",
	TagCode:          "code",
	TagHide:          "hide",
	TagCurrentUser:   "cur",
	TagModerator:     "mod",
	TagStaff:         "ex",
	TagMergetime:     "mergetime",
	TagSnapback:      "snapback",
	TagImage:         "img",
	TagAttachment:    "attachment",
}

// String returns the markup name of the Tag, e.g. "b" for [TagBold].
func (t Tag) String() string {
	if t <= TagNone || t >= NumTags {
		return ""
	}
	return tagNames[t]
}

// LookupTag finds the Tag by its markup name. The comparison is ASCII case-insensitive,
// so "B", "b" and "Quote" are all valid names.
func LookupTag(name string) (Tag, bool) {
	if name == "" {
		return TagNone, false
	}

	for t := TagNone + 1; t < NumTags; t++ {
		n := tagNames[t]
		if n != "" && strings.EqualFold(n, name) {
			return t, true
		}
	}

	return TagNone, false
}

// IsContainer reports whether the Tag owns a child list which is terminated by
// the matching closing tag. Self-closing tags are not containers.
func (t Tag) IsContainer() bool {
	return t > TagNone && t < NumTags && !t.IsSelfClosing()
}

// CanContainTags reports whether the body of the Tag must be parsed recursively.
// Tags with opaque bodies keep everything up to their closing tag as literal text.
func (t Tag) CanContainTags() bool {
	switch t {
	case TagCode, TagImage, TagSnapback, TagMergetime:
		return false
	}
	return t.IsContainer()
}

// IsSelfClosing reports whether the Tag has no closing counterpart and carries
// its payload in the attribute, like [attachment="1:photo.jpg"].
func (t Tag) IsSelfClosing() bool {
	return t == TagAttachment || t == TagSmile
}

// IsPseudoContainer reports whether the Node built from the Tag wraps a single
// atomic payload instead of a list of children.
func (t Tag) IsPseudoContainer() bool {
	switch t {
	case TagSnapback, TagMergetime, TagImage, TagAttachment, TagSmile:
		return true
	}
	return false
}

// AttributeNests reports whether the attribute of the Tag may contain balanced
// tag syntax, like [quote="[b]admin[/b]"].
func (t Tag) AttributeNests() bool {
	return t == TagQuote || t == TagSpoiler
}
