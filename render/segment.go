package render

import "strings"

// MediaKind defines the type of the embedded object.
type MediaKind int

const (
	MediaImage MediaKind = iota + 1
	MediaFile
	MediaSmile
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaFile:
		return "file"
	case MediaSmile:
		return "smile"
	}
	return "none"
}

// Media is an object displayed in place of the text.
type Media struct {
	Kind MediaKind
	ID   int64
	URL  string
	Name string
	Size int64
}

// Segment is a piece of the output sharing one Style.
type Segment struct {
	// Text is what is shown. For Media it's the textual fallback: the URL of an image,
	// the name of a file or the code of an emoticon.
	Text  string
	Style Style

	// Media is set for embedded objects.
	Media *Media

	// Header marks the title line of a quote or a spoiler.
	Header bool

	// Lang is the language of a code block.
	Lang string
}

func (s Segment) mergeable(next Segment) bool {
	return s.Media == nil && next.Media == nil &&
		!s.Header && !next.Header &&
		s.Lang == next.Lang &&
		s.Style == next.Style
}

// Styled is the rendered post.
type Styled struct {
	Base     Style
	Segments []Segment
}

// String returns the text of the Styled without any styling.
func (s Styled) String() string {
	var b strings.Builder
	for _, seg := range s.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}
