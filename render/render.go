package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/Drolfothesgnir/bbpost/bbcode"
)

// Render walks the parsed post and produces the Styled output.
//
// Styling requests which cannot be satisfied, like an unknown color name, a font which
// is not supported or a size out of the 1-7 range, keep the style of the enclosing text.
func Render[T bbcode.Text[T]](nodes []bbcode.Node[T], opts Options) Styled {
	opts = opts.withDefaults()
	r := &renderer[T]{opts: opts, titles: opts.Limits.MaxDepth}
	r.nodes(nodes, r.opts.Base)

	return Styled{
		Base:     r.opts.Base,
		Segments: r.out,
	}
}

type renderer[T bbcode.Text[T]] struct {
	opts Options
	out  []Segment

	// needBreak makes the next emitted segment start on a new line
	needBreak bool

	// titles is how many levels of titles nested in titles may still be parsed
	titles int
}

func (r *renderer[T]) nodes(ns []bbcode.Node[T], st Style) {
	prevMedia := false

	for i, n := range ns {
		if n.IsEmptyText() && prevMedia && nextIsMedia(ns, i+1) {
			continue
		}

		if n.IsMedia() {
			if prevMedia {
				r.lineBreak()
			}
			prevMedia = true
		} else if !n.IsEmptyText() {
			prevMedia = false
		}

		r.node(n, st)
	}
}

// nextIsMedia reports whether the first non-blank node starting from the index is a media node.
func nextIsMedia[T bbcode.Text[T]](ns []bbcode.Node[T], from int) bool {
	for _, n := range ns[from:] {
		if n.IsEmptyText() {
			continue
		}
		return n.IsMedia()
	}
	return false
}

func (r *renderer[T]) node(n bbcode.Node[T], st Style) {
	base := r.opts.Base

	switch n.Kind {
	case bbcode.KindText:
		for _, run := range n.Payload.Runs() {
			r.emit(Segment{Text: run.Text, Style: st.withAttrs(run.Attrs)})
		}

	case bbcode.KindBold:
		st.Font.Bold = true
		r.nodes(n.Children, st)

	case bbcode.KindItalic:
		st.Font.Italic = true
		r.nodes(n.Children, st)

	case bbcode.KindUnderline:
		st.Underline = true
		r.nodes(n.Children, st)

	case bbcode.KindStrikethrough:
		st.Strikethrough = true
		r.nodes(n.Children, st)

	case bbcode.KindSuperscript, bbcode.KindSubscript:
		st.Baseline = BaselineSuper
		if n.Kind == bbcode.KindSubscript {
			st.Baseline = BaselineSub
		}
		st.Font.Size *= scriptScale
		r.nodes(n.Children, st)

	case bbcode.KindSize:
		if size, ok := ScaleSize(base.Font.Size, n.Size); ok {
			st.Font.Size = size
		}
		r.nodes(n.Children, st)

	case bbcode.KindColor:
		if c, ok := ParseColor(n.Attr.String()); ok {
			st.Color = c
		}
		r.nodes(n.Children, st)

	case bbcode.KindBackground:
		if c, ok := ParseColor(n.Attr.String()); ok {
			st.Background = c
		}
		r.nodes(n.Children, st)

	case bbcode.KindFont:
		if f, ok := ParseFont(n.Attr.String()); ok {
			st.Font.Family = f
		}
		r.nodes(n.Children, st)

	case bbcode.KindURL:
		link := linkTarget(n)
		st.Link = link
		st.Underline = true
		st.Color = linkColor

		if len(n.Children) == 0 {
			r.emit(Segment{Text: link, Style: st})
			return
		}
		r.nodes(n.Children, st)

	case bbcode.KindAnchor:
		st.Anchor = strings.TrimSpace(n.Attr.String())
		r.nodes(n.Children, st)

	case bbcode.KindOfftop:
		st.Font.Size = base.Font.Size * offtopScale
		st.Color = mutedColor
		r.nodes(n.Children, st)

	case bbcode.KindCenter, bbcode.KindLeft, bbcode.KindRight, bbcode.KindJustify:
		st.Align = alignments[n.Kind]
		r.block(func() { r.nodes(n.Children, st) })

	case bbcode.KindList:
		r.list(n, st)

	case bbcode.KindSpoiler:
		r.titled(n, st, BlockSpoiler, DefaultSpoilerTitle, "")

	case bbcode.KindQuote:
		r.titled(n, st, BlockQuote, DefaultQuoteTitle, " wrote:")

	case bbcode.KindCode:
		st.Font.Family = monospace
		st.Font.Monospace = true
		st.Block = BlockCode

		code := strings.Trim(bbcode.PlainTextOf(n.Children), "\r\n")
		r.block(func() {
			r.emit(Segment{Text: code, Style: st, Lang: strings.TrimSpace(n.Attr.String())})
		})

	case bbcode.KindHide, bbcode.KindCurrentUser, bbcode.KindModerator, bbcode.KindStaff:
		if r.opts.Viewer.CanSee(n.Kind, r.opts.AuthorID) {
			r.nodes(n.Children, st)
			return
		}

		st.Font.Italic = true
		st.Color = mutedColor
		st.Block = BlockHidden
		r.emit(Segment{Text: r.opts.HiddenPlaceholder, Style: st})

	case bbcode.KindSnapback:
		st.Link = r.opts.PostURL(n.Payload.String())
		st.Color = linkColor
		r.emit(Segment{Text: "»", Style: st})

	case bbcode.KindMergetime:
		sec, err := strconv.ParseInt(n.Payload.String(), 10, 64)
		if err != nil {
			return
		}

		st.Font.Italic = true
		st.Font.Size = base.Font.Size * offtopScale
		st.Color = mutedColor

		label := DefaultMergedLabel + " " + time.Unix(sec, 0).In(r.opts.Location).Format("2006-01-02 15:04")
		r.block(func() { r.emit(Segment{Text: label, Style: st}) })

	case bbcode.KindImage:
		url := n.Payload.String()
		r.emit(Segment{Text: url, Style: st, Media: &Media{Kind: MediaImage, URL: url}})

	case bbcode.KindAttachment:
		m := attachmentMedia(n.Attachment)
		r.emit(Segment{Text: m.Name, Style: st, Media: m})

	case bbcode.KindSmile:
		r.emit(Segment{
			Text:  n.Payload.String(),
			Style: st,
			Media: &Media{Kind: MediaSmile, Name: n.Smile, URL: r.opts.SmileURL(n.Smile)},
		})
	}
}

var alignments = map[bbcode.Kind]Alignment{
	bbcode.KindCenter:  AlignCenter,
	bbcode.KindLeft:    AlignLeft,
	bbcode.KindRight:   AlignRight,
	bbcode.KindJustify: AlignJustify,
}

func (r *renderer[T]) list(n bbcode.Node[T], st Style) {
	st.Block = BlockList
	st.Indent++

	r.block(func() {
		for i, item := range splitItems(n.Children) {
			if i > 0 {
				r.lineBreak()
			}
			r.emit(Segment{Text: n.List.Marker(i), Style: st})
			r.nodes(item, st)
		}
	})
}

// titled renders a quote or a spoiler: the header line followed by the indented body.
func (r *renderer[T]) titled(n bbcode.Node[T], st Style, block Block, fallback, suffix string) {
	st.Block = block
	st.Indent++

	header := st
	header.Font.Bold = true

	r.block(func() {
		title := strings.TrimSpace(n.Attr.String())
		if title == "" {
			r.emit(Segment{Text: fallback, Style: header, Header: true})
		} else {
			r.title(n.Attr, header, suffix)
		}

		r.lineBreak()
		r.nodes(n.Children, st)
	})
}

// title renders the attribute of a quote or a spoiler, which may contain markup itself.
func (r *renderer[T]) title(attr T, st Style, suffix string) {
	nodes, ok := parseTitle(attr, r.opts, r.titles)
	if !ok {
		r.emit(Segment{Text: attr.String() + suffix, Style: st, Header: true})
		return
	}

	sub := &renderer[T]{opts: r.opts, titles: r.titles - 1}
	sub.nodes(nodes, st)

	for _, seg := range sub.out {
		seg.Header = true
		r.emit(seg)
	}

	if suffix != "" {
		r.emit(Segment{Text: suffix, Style: st, Header: true})
	}
}

func (r *renderer[T]) block(body func()) {
	r.lineBreak()
	body()
	r.lineBreak()
}

// lineBreak makes the next segment start on a new line, if it's not already there.
func (r *renderer[T]) lineBreak() {
	if len(r.out) > 0 {
		r.needBreak = true
	}
}

func (r *renderer[T]) emit(seg Segment) {
	if seg.Text == "" && seg.Media == nil {
		return
	}

	if r.needBreak {
		r.needBreak = false
		if !r.endsWithNewline() {
			r.append(Segment{Text: "\n", Style: seg.Style, Header: seg.Header, Lang: seg.Lang})
		}
	}

	r.append(seg)
}

func (r *renderer[T]) append(seg Segment) {
	if last := len(r.out) - 1; last >= 0 && r.out[last].mergeable(seg) {
		r.out[last].Text += seg.Text
		return
	}
	r.out = append(r.out, seg)
}

func (r *renderer[T]) endsWithNewline() bool {
	if len(r.out) == 0 {
		return true
	}
	return strings.HasSuffix(r.out[len(r.out)-1].Text, "\n")
}

// linkTarget returns the URL of the [url] tag: the attribute, or the text when there is none.
func linkTarget[T bbcode.Text[T]](n bbcode.Node[T]) string {
	if link := strings.TrimSpace(n.Attr.String()); link != "" {
		return link
	}
	return strings.TrimSpace(bbcode.PlainTextOf(n.Children))
}

func attachmentMedia(a bbcode.Attachment) *Media {
	kind := MediaFile
	if a.IsImage() {
		kind = MediaImage
	}

	name := a.Name
	if name == "" {
		name = "attachment #" + strconv.FormatInt(a.ID, 10)
	}

	return &Media{Kind: kind, ID: a.ID, URL: a.URL, Name: name, Size: a.Size}
}
