package render

import (
	"strings"
	"time"

	"github.com/Drolfothesgnir/bbpost/bbcode"
)

const (
	DefaultHiddenPlaceholder = "Hidden content"
	DefaultSpoilerTitle      = "Spoiler"
	DefaultQuoteTitle        = "Quote"
	DefaultMergedLabel       = "Added"
)

// Options configures the rendering of one post.
type Options struct {
	// Base is the style of the text outside of any tag. [DefaultStyle] is used when zero.
	Base Style

	// Viewer is the reader of the post, it decides which restricted blocks are shown.
	Viewer Viewer

	// AuthorID is the author of the post, the only reader of the [cur] blocks besides the staff.
	AuthorID int64

	// HiddenPlaceholder replaces the restricted blocks the Viewer is not allowed to see.
	HiddenPlaceholder string

	// SmileURL maps the emoticon resource to the image URL.
	SmileURL func(resource string) string

	// PostURL maps the post ID of a [snapback] to the link.
	PostURL func(postID string) string

	// Location is used to show the [mergetime] timestamps. UTC is used when nil.
	Location *time.Location

	// Limits and Smiles are used to parse the titles of quotes and spoilers, which may hold
	// markup themselves. Limits.MaxDepth also bounds how deep such titles nest inside each
	// other, the deeper ones are shown as text.
	Limits bbcode.Limits
	Smiles *bbcode.SmileTable
}

func (o Options) withDefaults() Options {
	if o.Base == (Style{}) {
		o.Base = DefaultStyle
	}

	if o.Base.Font.Size <= 0 {
		o.Base.Font.Size = DefaultStyle.Font.Size
	}

	if o.HiddenPlaceholder == "" {
		o.HiddenPlaceholder = DefaultHiddenPlaceholder
	}

	if o.SmileURL == nil {
		o.SmileURL = func(resource string) string {
			return "/smiles/" + resource + ".gif"
		}
	}

	if o.PostURL == nil {
		o.PostURL = func(postID string) string {
			return "/posts/" + strings.TrimSpace(postID)
		}
	}

	if o.Location == nil {
		o.Location = time.UTC
	}

	if o.Limits.MaxDepth <= 0 {
		o.Limits.MaxDepth = bbcode.DefaultMaxDepth
	}

	return o
}

// parseTitle parses the attribute of a quote or a spoiler. It fails when the nesting
// budget of the titles is spent, or when the attribute cannot be parsed.
func parseTitle[T bbcode.Text[T]](attr T, opts Options, budget int) ([]bbcode.Node[T], bool) {
	if budget <= 0 {
		return nil, false
	}

	nodes, err := bbcode.Parse(attr, bbcode.WithLimits(opts.Limits), bbcode.WithSmiles(opts.Smiles))
	if err != nil {
		return nil, false
	}

	return nodes, true
}
