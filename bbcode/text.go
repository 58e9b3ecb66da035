package bbcode

import (
	"encoding/json"
	"strings"
)

// Text is the payload carried by Tokens and Nodes. The tokenizer scans the plain
// projection returned by String and cuts payloads with Slice, using byte offsets
// into that projection.
//
// Two implementations are provided: [PlainText] and [RichText].
type Text[T any] interface {
	// String returns the plain projection of the payload.
	String() string

	// Slice returns the part of the payload between the byte offsets start
	// (inclusive) and end (exclusive) of the plain projection.
	Slice(start, end int) T

	// Runs returns the payload as styled runs.
	Runs() []Run
}

// PlainText is a Text without any styling.
type PlainText string

func (p PlainText) String() string {
	return string(p)
}

func (p PlainText) Slice(start, end int) PlainText {
	return p[start:end]
}

// Runs returns a single unstyled run, or nothing for an empty PlainText.
func (p PlainText) Runs() []Run {
	if p == "" {
		return nil
	}
	return []Run{{Text: string(p)}}
}

// Attrs defines the styling already present in a piece of [RichText].
type Attrs struct {
	Bold          bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline     bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Color         string `json:"color,omitempty" yaml:"color,omitempty"`
	Font          string `json:"font,omitempty" yaml:"font,omitempty"`
	Link          string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Run is a piece of text sharing the same Attrs.
type Run struct {
	Text  string `json:"text" yaml:"text"`
	Attrs Attrs  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// RichText is an attributed string made of ordered runs.
//
// The zero value is an empty RichText. RichText is immutable: Slice returns
// a new value and never modifies the receiver's runs.
type RichText struct {
	runs []Run
	n    int
}

// NewRichText builds a RichText from runs. Empty runs are dropped and
// neighbouring runs with equal Attrs are merged.
func NewRichText(runs ...Run) RichText {
	var r RichText

	for _, run := range runs {
		if run.Text == "" {
			continue
		}

		r.n += len(run.Text)

		last := len(r.runs) - 1
		if last >= 0 && r.runs[last].Attrs == run.Attrs {
			r.runs[last].Text += run.Text
			continue
		}

		r.runs = append(r.runs, run)
	}

	return r
}

func (r RichText) String() string {
	if len(r.runs) == 1 {
		return r.runs[0].Text
	}

	var b strings.Builder
	b.Grow(r.n)
	for _, run := range r.runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Len returns the byte length of the plain projection.
func (r RichText) Len() int {
	return r.n
}

func (r RichText) Runs() []Run {
	return r.runs
}

// IsZero reports whether the RichText is empty. Encoders use it to omit empty fields.
func (r RichText) IsZero() bool {
	return r.n == 0
}

// MarshalJSON encodes the RichText as the list of its runs.
func (r RichText) MarshalJSON() ([]byte, error) {
	if r.runs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.runs)
}

// MarshalYAML encodes the RichText as the list of its runs.
func (r RichText) MarshalYAML() (any, error) {
	return r.runs, nil
}

// Slice cuts the runs covering the [start, end) byte range of the plain projection.
// Runs on the edges are split.
func (r RichText) Slice(start, end int) RichText {
	if start < 0 || end > r.n || start > end {
		panic("bbcode: RichText.Slice bounds out of range")
	}

	if start == end {
		return RichText{}
	}

	out := RichText{n: end - start}

	// offset of the current run's first byte in the plain projection
	offset := 0

	for _, run := range r.runs {
		runEnd := offset + len(run.Text)

		if runEnd <= start {
			offset = runEnd
			continue
		}

		if offset >= end {
			break
		}

		from := max(start, offset) - offset
		to := min(end, runEnd) - offset

		out.runs = append(out.runs, Run{Text: run.Text[from:to], Attrs: run.Attrs})
		offset = runEnd
	}

	return out
}
