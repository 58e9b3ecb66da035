package render

import (
	"strconv"
	"strings"

	"github.com/Drolfothesgnir/bbpost/bbcode"
)

// Alignment defines the horizontal alignment of a paragraph.
type Alignment int

const (
	AlignNatural Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

// Baseline defines the vertical position of the text.
type Baseline int

const (
	BaselineNormal Baseline = iota
	BaselineSuper
	BaselineSub
)

// Block defines the kind of the block the text belongs to.
type Block int

const (
	BlockNone Block = iota
	BlockQuote
	BlockSpoiler
	BlockCode
	BlockList
	BlockHidden
)

// Font describes the typeface of the text.
type Font struct {
	Family    string
	Size      float64
	Bold      bool
	Italic    bool
	Monospace bool
}

// Style is the complete set of attributes applied to a Segment.
// Colors are always normalized to the "#rrggbb" form.
type Style struct {
	Font          Font
	Color         string
	Background    string
	Underline     bool
	Strikethrough bool
	Baseline      Baseline
	Link          string
	Anchor        string
	Align         Alignment
	Indent        int
	Block         Block
}

// DefaultStyle is the base style used when none is given.
var DefaultStyle = Style{
	Font:  Font{Family: "sans-serif", Size: 15},
	Color: "#000000",
}

const (
	linkColor   = "#0066cc"
	mutedColor  = "#808080"
	monospace   = "monospace"
	offtopScale = 0.82
	scriptScale = 0.75
)

// withAttrs applies the styling carried by a rich text run.
func (s Style) withAttrs(a bbcode.Attrs) Style {
	s.Font.Bold = s.Font.Bold || a.Bold
	s.Font.Italic = s.Font.Italic || a.Italic
	s.Underline = s.Underline || a.Underline
	s.Strikethrough = s.Strikethrough || a.Strikethrough

	if c, ok := ParseColor(a.Color); ok {
		s.Color = c
	}

	if f, ok := ParseFont(a.Font); ok {
		s.Font.Family = f
	}

	if a.Link != "" {
		s.Link = a.Link
	}

	return s
}

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"darkred":   "#8b0000",
	"maroon":    "#800000",
	"green":     "#008000",
	"darkgreen": "#006400",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"blue":      "#0000ff",
	"darkblue":  "#00008b",
	"navy":      "#000080",
	"royalblue": "#4169e1",
	"skyblue":   "#87ceeb",
	"cyan":      "#00ffff",
	"teal":      "#008080",
	"yellow":    "#ffff00",
	"gold":      "#ffd700",
	"orange":    "#ffa500",
	"brown":     "#a52a2a",
	"pink":      "#ffc0cb",
	"magenta":   "#ff00ff",
	"purple":    "#800080",
	"violet":    "#ee82ee",
	"indigo":    "#4b0082",
	"silver":    "#c0c0c0",
	"gray":      "#808080",
	"grey":      "#808080",
}

// ParseColor resolves a color name or a "#rgb"/"#rrggbb" hex value to the "#rrggbb" form.
func ParseColor(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}

	if c, ok := namedColors[s]; ok {
		return c, true
	}

	if s[0] != '#' {
		return "", false
	}

	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", false
		}
	}

	switch len(hex) {
	case 6:
		return s, true
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), true
	}

	return "", false
}

// RGB splits the "#rrggbb" color into its components.
func RGB(color string) (r, g, b int, ok bool) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(color[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f'
}

var knownFonts = map[string]string{
	"arial":           "Arial",
	"arial black":     "Arial Black",
	"comic sans ms":   "Comic Sans MS",
	"courier new":     "Courier New",
	"georgia":         "Georgia",
	"impact":          "Impact",
	"tahoma":          "Tahoma",
	"times new roman": "Times New Roman",
	"trebuchet ms":    "Trebuchet MS",
	"verdana":         "Verdana",
}

// ParseFont returns the canonical name of a supported font family.
func ParseFont(name string) (string, bool) {
	f, ok := knownFonts[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// sizeScales maps the [size] values to the factors of the base font size.
var sizeScales = [...]float64{1: 0.63, 2: 0.82, 3: 1, 4: 1.13, 5: 1.5, 6: 2, 7: 3}

// ScaleSize returns the font size for the [size=n] value, n from 1 to 7.
func ScaleSize(base float64, n int) (float64, bool) {
	if n < 1 || n >= len(sizeScales) {
		return base, false
	}
	return base * sizeScales[n], true
}
