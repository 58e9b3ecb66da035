package render

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/Drolfothesgnir/bbpost/bbcode"
)

// CodeStyle is the chroma style of the highlighted code blocks.
const CodeStyle = "github"

var codeFormatter = hlhtml.New(hlhtml.WithClasses(true), hlhtml.PreventSurroundingPre(true))

// policy keeps the markup produced by HTML and strips everything else,
// including javascript: links smuggled through [url] and [img].
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("details", "summary", "span", "div", "pre", "code", "blockquote", "figure")
	p.AllowAttrs("class").Globally()
	// the emoticon codes like :) are kept as the alt text
	p.AllowAttrs("alt").Matching(regexp.MustCompile(`^[^"<>]*$`)).OnElements("img")
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[A-Za-z0-9_-]+$`)).OnElements("a")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^(1|a|I|i)$`)).OnElements("ol")

	p.AllowStyles("color", "background-color").Globally()
	p.AllowStyles("font-size").Matching(regexp.MustCompile(`^\d+%$`)).Globally()
	p.AllowStyles("font-family").Matching(regexp.MustCompile(`^[A-Za-z ]+$`)).Globally()
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right", "justify").Globally()

	return p
}

// HTML renders the parsed post as sanitized HTML. Code blocks are highlighted with
// the CSS classes of [CodeStyle], see [WriteCodeCSS].
func HTML[T bbcode.Text[T]](nodes []bbcode.Node[T], opts Options) string {
	opts = opts.withDefaults()
	w := &htmlWriter[T]{opts: opts, titles: opts.Limits.MaxDepth}
	w.nodes(nodes)
	return policy.Sanitize(w.b.String())
}

// WriteCodeCSS writes the stylesheet of the highlighted code blocks.
func WriteCodeCSS(w io.Writer) error {
	return codeFormatter.WriteCSS(w, styles.Get(CodeStyle))
}

type htmlWriter[T bbcode.Text[T]] struct {
	opts Options
	b    strings.Builder

	// titles is how many levels of titles nested in titles may still be parsed
	titles int
}

func (w *htmlWriter[T]) nodes(ns []bbcode.Node[T]) {
	prevMedia := false

	for i, n := range ns {
		if n.IsEmptyText() && prevMedia && nextIsMedia(ns, i+1) {
			continue
		}

		if n.IsMedia() {
			if prevMedia {
				w.b.WriteString("<br>")
			}
			prevMedia = true
		} else if !n.IsEmptyText() {
			prevMedia = false
		}

		w.node(n)
	}
}

// wrap writes the children of the node between the opening and the closing markup.
func (w *htmlWriter[T]) wrap(open, end string, children []bbcode.Node[T]) {
	w.b.WriteString(open)
	w.nodes(children)
	w.b.WriteString(end)
}

func (w *htmlWriter[T]) node(n bbcode.Node[T]) {
	attr := strings.TrimSpace(n.Attr.String())

	switch n.Kind {
	case bbcode.KindText:
		for _, run := range n.Payload.Runs() {
			w.run(run)
		}

	case bbcode.KindBold:
		w.wrap("<b>", "</b>", n.Children)
	case bbcode.KindItalic:
		w.wrap("<i>", "</i>", n.Children)
	case bbcode.KindUnderline:
		w.wrap("<u>", "</u>", n.Children)
	case bbcode.KindStrikethrough:
		w.wrap("<s>", "</s>", n.Children)
	case bbcode.KindSuperscript:
		w.wrap("<sup>", "</sup>", n.Children)
	case bbcode.KindSubscript:
		w.wrap("<sub>", "</sub>", n.Children)

	case bbcode.KindSize:
		if _, ok := ScaleSize(1, n.Size); !ok {
			w.nodes(n.Children)
			return
		}
		pct := int(sizeScales[n.Size] * 100)
		w.wrap(`<span style="font-size: `+strconv.Itoa(pct)+`%">`, "</span>", n.Children)

	case bbcode.KindColor, bbcode.KindBackground:
		c, ok := ParseColor(attr)
		if !ok {
			w.nodes(n.Children)
			return
		}
		prop := "color"
		if n.Kind == bbcode.KindBackground {
			prop = "background-color"
		}
		w.wrap(`<span style="`+prop+`: `+c+`">`, "</span>", n.Children)

	case bbcode.KindFont:
		f, ok := ParseFont(attr)
		if !ok {
			w.nodes(n.Children)
			return
		}
		w.wrap(`<span style="font-family: `+f+`">`, "</span>", n.Children)

	case bbcode.KindURL:
		link := linkTarget(n)
		open := `<a href="` + html.EscapeString(link) + `">`
		if len(n.Children) == 0 {
			w.b.WriteString(open + html.EscapeString(link) + "</a>")
			return
		}
		w.wrap(open, "</a>", n.Children)

	case bbcode.KindAnchor:
		w.wrap(`<a id="`+html.EscapeString(attr)+`">`, "</a>", n.Children)

	case bbcode.KindOfftop:
		w.wrap(`<span class="offtop">`, "</span>", n.Children)

	case bbcode.KindCenter, bbcode.KindLeft, bbcode.KindRight, bbcode.KindJustify:
		w.wrap(`<div style="text-align: `+n.Kind.String()+`">`, "</div>", n.Children)

	case bbcode.KindList:
		w.list(n)

	case bbcode.KindSpoiler:
		w.b.WriteString(`<details class="spoiler"><summary>`)
		w.title(n.Attr, DefaultSpoilerTitle, "")
		w.wrap("</summary>", "</details>", n.Children)

	case bbcode.KindQuote:
		w.b.WriteString(`<blockquote class="quote"><div class="quote-title">`)
		w.title(n.Attr, DefaultQuoteTitle, " wrote:")
		w.wrap("</div>", "</blockquote>", n.Children)

	case bbcode.KindCode:
		w.code(attr, strings.Trim(bbcode.PlainTextOf(n.Children), "\r\n"))

	case bbcode.KindHide, bbcode.KindCurrentUser, bbcode.KindModerator, bbcode.KindStaff:
		if w.opts.Viewer.CanSee(n.Kind, w.opts.AuthorID) {
			w.wrap(`<div class="restricted restricted-`+n.Kind.String()+`">`, "</div>", n.Children)
			return
		}
		w.b.WriteString(`<div class="hidden-content">` + html.EscapeString(w.opts.HiddenPlaceholder) + "</div>")

	case bbcode.KindSnapback:
		href := w.opts.PostURL(n.Payload.String())
		w.b.WriteString(`<a class="snapback" href="` + html.EscapeString(href) + `">»</a>`)

	case bbcode.KindMergetime:
		sec, err := strconv.ParseInt(n.Payload.String(), 10, 64)
		if err != nil {
			return
		}
		t := time.Unix(sec, 0).In(w.opts.Location).Format("2006-01-02 15:04")
		w.b.WriteString(`<div class="mergetime">` + DefaultMergedLabel + " " + t + "</div>")

	case bbcode.KindImage:
		src := n.Payload.String()
		w.b.WriteString(`<img src="` + html.EscapeString(src) + `" alt="">`)

	case bbcode.KindAttachment:
		w.attachment(attachmentMedia(n.Attachment))

	case bbcode.KindSmile:
		src := w.opts.SmileURL(n.Smile)
		code := html.EscapeString(n.Payload.String())
		w.b.WriteString(`<img class="smile" src="` + html.EscapeString(src) + `" alt="` + code + `">`)
	}
}

// run writes the piece of the text with the styling it already carries.
func (w *htmlWriter[T]) run(run bbcode.Run) {
	text := strings.ReplaceAll(html.EscapeString(run.Text), "\n", "<br>")
	a := run.Attrs

	if c, ok := ParseColor(a.Color); ok {
		text = `<span style="color: ` + c + `">` + text + "</span>"
	}
	if f, ok := ParseFont(a.Font); ok {
		text = `<span style="font-family: ` + f + `">` + text + "</span>"
	}
	if a.Bold {
		text = "<b>" + text + "</b>"
	}
	if a.Italic {
		text = "<i>" + text + "</i>"
	}
	if a.Underline {
		text = "<u>" + text + "</u>"
	}
	if a.Strikethrough {
		text = "<s>" + text + "</s>"
	}
	if a.Link != "" {
		text = `<a href="` + html.EscapeString(a.Link) + `">` + text + "</a>"
	}

	w.b.WriteString(text)
}

var listTypes = map[bbcode.ListKind]string{
	bbcode.ListNumeric:    "1",
	bbcode.ListAlpha:      "a",
	bbcode.ListUpperRoman: "I",
	bbcode.ListLowerRoman: "i",
}

func (w *htmlWriter[T]) list(n bbcode.Node[T]) {
	open, end := "<ul>", "</ul>"
	if t, ok := listTypes[n.List]; ok {
		open, end = `<ol type="`+t+`">`, "</ol>"
	}

	w.b.WriteString(open)
	for _, item := range splitItems(n.Children) {
		w.wrap("<li>", "</li>", item)
	}
	w.b.WriteString(end)
}

func (w *htmlWriter[T]) title(attr T, fallback, suffix string) {
	if strings.TrimSpace(attr.String()) == "" {
		w.b.WriteString(html.EscapeString(fallback))
		return
	}

	nodes, ok := parseTitle(attr, w.opts, w.titles)
	if !ok {
		w.b.WriteString(html.EscapeString(attr.String()))
	} else {
		w.titles--
		w.nodes(nodes)
		w.titles++
	}

	w.b.WriteString(html.EscapeString(suffix))
}

func (w *htmlWriter[T]) code(lang, code string) {
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Analyse(code)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	class := "code"
	if lang != "" {
		class += " language-" + strings.ToLower(lang)
	}

	w.b.WriteString(`<pre class="` + html.EscapeString(class) + `">`)

	it, err := l.Tokenise(nil, code)
	if err == nil {
		err = codeFormatter.Format(&w.b, styles.Get(CodeStyle), it)
	}
	if err != nil {
		w.b.WriteString(html.EscapeString(code))
	}

	w.b.WriteString("</pre>")
}

func (w *htmlWriter[T]) attachment(m *Media) {
	name := html.EscapeString(m.Name)
	src := html.EscapeString(m.URL)

	switch {
	case m.Kind == MediaImage && m.URL != "":
		fmt.Fprintf(&w.b, `<figure class="attachment"><img src="%s" alt="%s"></figure>`, src, name)
	case m.URL != "":
		fmt.Fprintf(&w.b, `<a class="attachment" href="%s">%s</a>`, src, name)
	default:
		fmt.Fprintf(&w.b, `<span class="attachment">%s</span>`, name)
	}
}
