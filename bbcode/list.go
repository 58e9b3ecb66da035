package bbcode

import (
	"strconv"
	"strings"
)

// listItemName is the name inside the "[*]" item separator. The separator is not a Tag:
// it stays in the tree as plain text and is used by the renderer to split list items.
const listItemName = "*"

// ListItemMarker separates the items of the [list] container.
const ListItemMarker = "[" + listItemName + "]"

// ListKind defines how the items of a list are numbered.
type ListKind int

const (
	ListBullet ListKind = iota
	ListNumeric
	ListAlpha
	ListUpperRoman
	ListLowerRoman
)

// ParseListKind maps the attribute of the [list] tag to the ListKind.
// Only the closed set of values is valid: none, "1", "a", "A", "I" and "i".
func ParseListKind(attr string) (ListKind, bool) {
	switch strings.TrimSpace(attr) {
	case "":
		return ListBullet, true
	case "1":
		return ListNumeric, true
	case "a", "A":
		return ListAlpha, true
	case "I":
		return ListUpperRoman, true
	case "i":
		return ListLowerRoman, true
	}

	return ListBullet, false
}

// Marker returns the prefix of the list item with the zero-based index i,
// e.g. "• " for a bullet list and "3. " for the third item of a numeric one.
func (k ListKind) Marker(i int) string {
	n := i + 1

	switch k {
	case ListNumeric:
		return strconv.Itoa(n) + ". "
	case ListAlpha:
		return alpha(n) + ". "
	case ListUpperRoman:
		return roman(n) + ". "
	case ListLowerRoman:
		return strings.ToLower(roman(n)) + ". "
	}

	return "• "
}

// alpha converts 1, 2, ..., 26, 27 to a, b, ..., z, aa.
func alpha(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('a'+n%26))
		n /= 26
	}

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}

	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}

	return b.String()
}
