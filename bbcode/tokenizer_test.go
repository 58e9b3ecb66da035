package bbcode

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collectTokens[T Text[T]](tz *Tokenizer[T]) []Token[T] {
	var out []Token[T]
	for {
		tok, ok := tz.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func newWarnings(t *testing.T) *Warnings {
	t.Helper()
	w, err := NewWarnings(WarnOverflowNoCap, 0)
	require.NoError(t, err)
	return w
}

func issuesOf(w *Warnings) []Issue {
	var out []Issue
	for _, item := range w.List() {
		out = append(out, item.Issue)
	}
	return out
}

// requireTokenizeInvariants checks that the Tokens cover the whole input without gaps or overlaps.
func requireTokenizeInvariants(t *testing.T, inp string, toks []Token[PlainText]) {
	t.Helper()

	end := 0
	var b strings.Builder

	for i, tok := range toks {
		require.Equal(t, end, tok.Pos, "gap/overlap at token %d", i)
		end = tok.Pos + tok.Width()
		b.WriteString(tok.Raw.String())
	}

	require.Equal(t, len(inp), end, "tokens do not cover full input")
	require.Equal(t, inp, b.String())
}

func textTok(s string, pos int) Token[PlainText] {
	return Token[PlainText]{Type: TokenText, Raw: PlainText(s), Pos: pos}
}

func TestTokenizer(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   []Token[PlainText]
		issues []Issue
	}{
		{
			name:  "SimpleTag",
			input: "[b]hello[/b]",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagBold, Raw: "[b]", Pos: 0},
				textTok("hello", 3),
				{Type: TokenClosingTag, Tag: TagBold, Raw: "[/b]", Pos: 8},
			},
		},
		{
			name:  "CaseInsensitiveName",
			input: "[B]x[/b]",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagBold, Raw: "[B]", Pos: 0},
				textTok("x", 3),
				{Type: TokenClosingTag, Tag: TagBold, Raw: "[/b]", Pos: 4},
			},
		},
		{
			name:  "Attribute",
			input: "[color=red]x",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagColor, Attr: "red", HasAttr: true, Raw: "[color=red]", Pos: 0},
				textTok("x", 11),
			},
		},
		{
			name:  "EmptyAttribute",
			input: "[url=]",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagURL, Attr: "", HasAttr: true, Raw: "[url=]", Pos: 0},
			},
		},
		{
			name:  "NestedAttributeOfSpoiler",
			input: `[spoiler="a [b]b[/b] c"]`,
			want: []Token[PlainText]{
				{
					Type:    TokenOpeningTag,
					Tag:     TagSpoiler,
					Attr:    `"a [b]b[/b] c"`,
					HasAttr: true,
					Raw:     `[spoiler="a [b]b[/b] c"]`,
					Pos:     0,
				},
			},
		},
		{
			name:  "AttributeOfColorStopsAtFirstBracket",
			input: "[color=a[b]x",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagColor, Attr: "a[b", HasAttr: true, Raw: "[color=a[b]", Pos: 0},
				textTok("x", 11),
			},
		},
		{
			name:  "OpaqueBody",
			input: "[code][b]x[/b][/code]",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagCode, Raw: "[code]", Pos: 0},
				textTok("[b]x[/b]", 6),
				{Type: TokenClosingTag, Tag: TagCode, Raw: "[/code]", Pos: 14},
			},
		},
		{
			name:  "EmptyOpaqueBody",
			input: "[img][/IMG]",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagImage, Raw: "[img]", Pos: 0},
				textTok("", 5),
				{Type: TokenClosingTag, Tag: TagImage, Raw: "[/IMG]", Pos: 5},
			},
		},
		{
			name:  "UnclosedOpaqueBody",
			input: "[code]abc",
			want: []Token[PlainText]{
				textTok("[code]", 0),
				textTok("abc", 6),
			},
			issues: []Issue{IssueUnclosedTag},
		},
		{
			name:   "UnknownTag",
			input:  "[nonexistentTag]",
			want:   []Token[PlainText]{textTok("[nonexistentTag]", 0)},
			issues: []Issue{IssueUnknownTag},
		},
		{
			name:  "UnknownTagWithAttribute",
			input: "[foo=bar]",
			want: []Token[PlainText]{
				textTok("[foo", 0),
				textTok("=bar]", 4),
			},
		},
		{
			name:   "UnknownClosingTag",
			input:  "[/foo]",
			want:   []Token[PlainText]{textTok("[/foo]", 0)},
			issues: []Issue{IssueUnknownTag},
		},
		{
			name:   "ClosingSelfClosingTag",
			input:  "[/attachment]",
			want:   []Token[PlainText]{textTok("[/attachment]", 0)},
			issues: []Issue{IssueUnknownTag},
		},
		{
			name:   "UnterminatedTag",
			input:  "[b",
			want:   []Token[PlainText]{textTok("[b", 0)},
			issues: []Issue{IssueUnexpectedEOL},
		},
		{
			name:   "UnterminatedAttribute",
			input:  "[quote=[b]x",
			want:   []Token[PlainText]{textTok("[quote=[b]x", 0)},
			issues: []Issue{IssueUnexpectedEOL},
		},
		{
			name:  "LineBreakInsideTag",
			input: "[b\n]",
			want: []Token[PlainText]{
				textTok("[b", 0),
				textTok("\n]", 2),
			},
		},
		{
			name:  "BracketInsideTagName",
			input: "[[b]",
			want: []Token[PlainText]{
				textTok("[", 0),
				{Type: TokenOpeningTag, Tag: TagBold, Raw: "[b]", Pos: 1},
			},
		},
		{
			name:  "ListItemMarker",
			input: "[*]a",
			want: []Token[PlainText]{
				textTok("[*]", 0),
				textTok("a", 3),
			},
		},
		{
			name:  "SmileAtRunStart",
			input: ":)x",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagSmile, Attr: ":)", HasAttr: true, Raw: ":)", Pos: 0},
				textTok("x", 2),
			},
		},
		{
			name:  "SmileAfterText",
			input: "hi :lol:",
			want: []Token[PlainText]{
				textTok("hi ", 0),
				{Type: TokenOpeningTag, Tag: TagSmile, Attr: ":lol:", HasAttr: true, Raw: ":lol:", Pos: 3},
			},
		},
		{
			name:  "LongestSmileWins",
			input: ":lol_girl:",
			want: []Token[PlainText]{
				{Type: TokenOpeningTag, Tag: TagSmile, Attr: ":lol_girl:", HasAttr: true, Raw: ":lol_girl:", Pos: 0},
			},
		},
		{
			name:  "ColonBeforeLineBreak",
			input: "8:\n",
			want:  []Token[PlainText]{textTok("8:\n", 0)},
		},
		{
			name:  "TimeIsNotSmile",
			input: "at 12:30",
			want:  []Token[PlainText]{textTok("at 12:30", 0)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWarnings(t)
			toks := collectTokens(NewTokenizer(PlainText(tc.input), WithWarnings(w)))

			require.Equal(t, tc.want, toks)
			require.Equal(t, tc.issues, issuesOf(w))
			requireTokenizeInvariants(t, tc.input, toks)
		})
	}
}

func TestTokenizer_TagNameTooLong(t *testing.T) {
	w := newWarnings(t)
	toks := collectTokens(NewTokenizer(PlainText("[abcdefgh]"), WithWarnings(w), WithLimits(Limits{MaxTagNameLen: 4})))

	require.Equal(t, []Token[PlainText]{
		textTok("[abcd", 0),
		textTok("efgh]", 5),
	}, toks)
	require.Equal(t, []Issue{IssueTagNameTooLong}, issuesOf(w))
}

func TestTokenizer_TagNameTooLongKeepsRunes(t *testing.T) {
	input := "[ééé]"
	toks := collectTokens(NewTokenizer(PlainText(input), WithLimits(Limits{MaxTagNameLen: 3})))

	// 'é' takes 2 bytes, the cut moves back to the rune start
	require.Equal(t, "[é", toks[0].Raw.String())
	requireTokenizeInvariants(t, input, toks)
}

func TestTokenizer_SmileChecksExhausted(t *testing.T) {
	w := newWarnings(t)
	input := "x:1:2:3:)"
	toks := collectTokens(NewTokenizer(PlainText(input), WithWarnings(w), WithLimits(Limits{MaxSmileChecks: 2})))

	require.Equal(t, []Token[PlainText]{textTok(input, 0)}, toks)
	require.Equal(t, []Issue{IssueSmileChecksExhausted}, issuesOf(w))
}

func TestTokenizer_CustomSmiles(t *testing.T) {
	table := NewSmileTable(Smile{Code: ":cat:", Resource: "cat.gif"})
	toks := collectTokens(NewTokenizer(PlainText(":):cat:"), WithSmiles(table)))

	require.Equal(t, []Token[PlainText]{
		textTok(":)", 0),
		{Type: TokenOpeningTag, Tag: TagSmile, Attr: ":cat:", HasAttr: true, Raw: ":cat:", Pos: 2},
	}, toks)
}

func TestTokenizer_CoversInput(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"[b][i]x[/b][/i]",
		"[quote=[b]a[/b]]q[/quote] :) [/",
		"[code]a[code]b[/code]c[/code]",
		"[[[[]]]]:::::)",
		"[attachment=\"1:x.png\"][list=1][*]a[*]b[/list]",
		"[url=http://x.y]x[/url][size=7]big",
		"[snapback]12[/snapback][mergetime]1700000000[/mergetime]",
	}

	for _, inp := range inputs {
		toks := collectTokens(NewTokenizer(PlainText(inp)))
		requireTokenizeInvariants(t, inp, toks)
	}
}

func TestTokenizer_RichText(t *testing.T) {
	input := NewRichText(
		Run{Text: "[b]"},
		Run{Text: "bold", Attrs: Attrs{Italic: true}},
		Run{Text: "[/b]"},
	)

	toks := collectTokens(NewTokenizer(input))
	require.Len(t, toks, 3)

	require.Equal(t, TokenOpeningTag, toks[0].Type)
	require.Equal(t, TagBold, toks[0].Tag)

	require.Equal(t, TokenText, toks[1].Type)
	require.Equal(t, []Run{{Text: "bold", Attrs: Attrs{Italic: true}}}, toks[1].Raw.Runs())

	require.Equal(t, TokenClosingTag, toks[2].Type)
	require.Equal(t, "[/b]", toks[2].Raw.String())
}

func TestTokenizer_RepeatedUnclosedOpaqueTags(t *testing.T) {
	for _, tag := range []string{"[code]", "[img]", "[snapback]", "[mergetime]"} {
		t.Run(tag, func(t *testing.T) {
			inp := strings.Repeat(tag, 100_000)
			w := newWarnings(t)

			start := time.Now()
			toks := collectTokens(NewTokenizer(PlainText(inp), WithWarnings(w)))
			elapsed := time.Since(start)

			requireTokenizeInvariants(t, inp, toks)
			for _, tok := range toks {
				require.Equal(t, TokenText, tok.Type)
			}
			require.Len(t, w.List(), 100_000)

			// a rescan of the rest of the input per tag takes minutes here
			require.Less(t, elapsed, 5*time.Second)
		})
	}
}

func TestTokenizer_OpaqueTagClosedAfterUnclosedOther(t *testing.T) {
	inp := "[img][code]x[/code]"
	toks := collectTokens(NewTokenizer(PlainText(inp)))
	requireTokenizeInvariants(t, inp, toks)

	require.Equal(t, TokenText, toks[0].Type)
	require.Equal(t, "[img]", toks[0].Raw.String())
	require.Equal(t, TokenOpeningTag, toks[1].Type)
	require.Equal(t, TagCode, toks[1].Tag)
}
