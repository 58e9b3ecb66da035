package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// ANSIOptions configures the terminal output.
type ANSIOptions struct {
	// Color enables the escape sequences. Without it only the layout is produced.
	Color bool
}

// ANSI renders the Styled output for a terminal. Blocks are indented, quotes and
// spoilers get a gutter, their headers are underlined to the display width of the title.
func ANSI(s Styled, opts ANSIOptions) string {
	w := &ansiWriter{base: s.Base, color: opts.Color, lineStart: true}

	for i, seg := range s.Segments {
		w.segment(seg)

		endsHeader := seg.Header && (i+1 == len(s.Segments) || !s.Segments[i+1].Header)
		if endsHeader {
			w.rule(seg.Style)
		}
	}

	return w.b.String()
}

type ansiWriter struct {
	base      Style
	color     bool
	b         strings.Builder
	lineStart bool

	// header collects the title being written to size its underline
	header strings.Builder
}

func (w *ansiWriter) segment(seg Segment) {
	text := seg.Text

	switch {
	case seg.Media == nil:
	case seg.Media.Kind == MediaImage:
		text = "[image: " + firstNonEmpty(seg.Media.URL, seg.Text) + "]"
	case seg.Media.Kind == MediaFile:
		text = "[file: " + seg.Text + "]"
	}

	if seg.Style.Link != "" && seg.Style.Link != strings.TrimSpace(text) && seg.Media == nil {
		text += " <" + seg.Style.Link + ">"
	}

	c := w.colorOf(seg.Style)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			w.b.WriteString("\n")
			w.lineStart = true
		}

		if line == "" {
			continue
		}

		if w.lineStart {
			w.b.WriteString(gutter(seg.Style))
			w.lineStart = false
		}

		if seg.Header {
			w.header.WriteString(line)
		}

		if c == nil {
			w.b.WriteString(line)
			continue
		}
		w.b.WriteString(c.Sprint(line))
	}
}

// rule underlines the header which was just written.
func (w *ansiWriter) rule(st Style) {
	width := runewidth.StringWidth(w.header.String())
	w.header.Reset()

	if width == 0 {
		return
	}

	w.b.WriteString("\n")
	w.b.WriteString(gutter(st))
	w.b.WriteString(strings.Repeat("─", width))
	w.lineStart = false
}

// gutter is the prefix of every line of the block.
func gutter(st Style) string {
	if st.Indent <= 0 {
		return ""
	}

	unit := "  "
	switch st.Block {
	case BlockQuote, BlockSpoiler:
		unit = "│ "
	}

	return strings.Repeat(unit, st.Indent)
}

// colorOf returns the terminal attributes of the style, or nil when the text is printed as is.
func (w *ansiWriter) colorOf(st Style) *color.Color {
	if !w.color {
		return nil
	}

	var attrs []color.Attribute

	if st.Font.Bold {
		attrs = append(attrs, color.Bold)
	}
	if st.Font.Italic {
		attrs = append(attrs, color.Italic)
	}
	if st.Underline {
		attrs = append(attrs, color.Underline)
	}
	if st.Strikethrough {
		attrs = append(attrs, color.CrossedOut)
	}

	fg, fgOK := "", false
	if st.Color != w.base.Color {
		fg, fgOK = st.Color, true
	}

	bg, bgOK := "", false
	if st.Background != "" && st.Background != w.base.Background {
		bg, bgOK = st.Background, true
	}

	if len(attrs) == 0 && !fgOK && !bgOK {
		return nil
	}

	c := color.New(attrs...)

	if r, g, b, ok := RGB(fg); fgOK && ok {
		c.AddRGB(r, g, b)
	}
	if r, g, b, ok := RGB(bg); bgOK && ok {
		c.AddBgRGB(r, g, b)
	}

	// the global switch follows the stdout, while the output may go anywhere
	c.EnableColor()

	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
