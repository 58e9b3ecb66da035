package bbcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAttachmentRef(t *testing.T) {
	testCases := []struct {
		ref  string
		want Attachment
	}{
		{ref: `"12:photo.jpg"`, want: Attachment{ID: 12, Name: "photo.jpg"}},
		{ref: `12:photo.jpg`, want: Attachment{ID: 12, Name: "photo.jpg"}},
		{ref: `"3:a:b.txt"`, want: Attachment{ID: 3, Name: "a:b.txt"}},
		{ref: `"7"`, want: Attachment{ID: 7}},
		{ref: `"x:name"`, want: Attachment{ID: 0, Name: "name"}},
		{ref: `"-1:name"`, want: Attachment{ID: 0, Name: "name"}},
		{ref: ``, want: Attachment{}},
	}

	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			require.Equal(t, tc.want, ParseAttachmentRef(tc.ref))
		})
	}
}

func TestParsePost_ResolvesAttachments(t *testing.T) {
	image := Attachment{ID: 1, Type: AttachmentImage, Name: "x", URL: "http://cdn/x.png", Size: 100}

	nodes, err := ParsePost(`[attachment="1:x"]`, []Attachment{image})
	require.NoError(t, err)

	require.Equal(t, []Node[PlainText]{
		{Kind: KindAttachment, Payload: `"1:x"`, Attachment: image},
	}, nodes)
}

func TestParsePost_ResolvesNested(t *testing.T) {
	file := Attachment{ID: 5, Type: AttachmentFile, Name: "doc.pdf"}

	nodes, err := ParsePost(`[quote][b][attachment="5:doc.pdf"][/b][/quote]`, []Attachment{file})
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	got := nodes[0].Children[0].Children[0]
	require.Equal(t, KindAttachment, got.Kind)
	require.Equal(t, file, got.Attachment)
}

func TestParsePost_Trailer(t *testing.T) {
	used := Attachment{ID: 1, Type: AttachmentImage, Name: "used.png"}
	img := Attachment{ID: 2, Type: AttachmentImage, Name: "a.png"}
	doc := Attachment{ID: 3, Type: AttachmentFile, Name: "b.zip"}
	img2 := Attachment{ID: 4, Type: AttachmentImage, Name: "c.png"}

	nodes, err := ParsePost(`text [attachment="1:used.png"]`, []Attachment{used, img, doc, img2})
	require.NoError(t, err)

	require.Equal(t, []Node[PlainText]{
		txt("text "),
		{Kind: KindAttachment, Payload: `"1:used.png"`, Attachment: used},
		{
			Kind: KindSpoiler,
			Attr: DefaultImagesLabel,
			Children: []Node[PlainText]{
				{Kind: KindAttachment, Payload: "2:a.png", Attachment: img},
				{Kind: KindAttachment, Payload: "4:c.png", Attachment: img2},
			},
		},
		txt(DefaultFilesLabel),
		{Kind: KindAttachment, Payload: "3:b.zip", Attachment: doc},
	}, nodes)
}

func TestParsePost_CustomLabels(t *testing.T) {
	nodes, err := ParsePost("", []Attachment{
		{ID: 1, Type: AttachmentFile, Name: "f"},
		{ID: 2, Type: AttachmentImage, Name: "i"},
	}, WithAttachmentLabels("Images", "Files:"))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	require.Equal(t, KindSpoiler, nodes[0].Kind)
	require.Equal(t, PlainText("Images"), nodes[0].Attr)
	require.Equal(t, txt("Files:"), nodes[1])
	require.Equal(t, KindAttachment, nodes[2].Kind)
}

func TestParsePost_UnknownAttachment(t *testing.T) {
	w := newWarnings(t)

	nodes, err := ParsePost(`[attachment="9:ghost.png"]`, nil, WithWarnings(w))
	require.NoError(t, err)

	require.Equal(t, []Node[PlainText]{
		{Kind: KindAttachment, Payload: `"9:ghost.png"`, Attachment: Attachment{ID: 9, Name: "ghost.png"}},
	}, nodes)
	require.Equal(t, []Issue{IssueUnknownAttachment}, issuesOf(w))
	require.Equal(t, 0, w.List()[0].Pos)
}

func TestParsePost_UnknownAttachmentPosition(t *testing.T) {
	w := newWarnings(t)
	known := Attachment{ID: 1, Type: AttachmentFile, Name: "a.txt"}

	input := `see [quote][attachment="1:a.txt"] and [attachment="9:ghost.png"][/quote]`
	nodes, err := ParsePost(input, []Attachment{known}, WithWarnings(w))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	require.Len(t, w.List(), 1)
	require.Equal(t, IssueUnknownAttachment, w.List()[0].Issue)
	require.Equal(t, strings.Index(input, `[attachment="9`), w.List()[0].Pos)

	quote := nodes[1]
	require.Equal(t, known, quote.Children[0].Attachment)
}

func TestParsePost_DuplicateRecordsShownOnce(t *testing.T) {
	doc := Attachment{ID: 3, Type: AttachmentFile, Name: "b.zip"}

	nodes, err := ParsePost("", []Attachment{doc, doc})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
}

func TestParsePost_ContractErrorIsNotPossibleForMarkup(t *testing.T) {
	inputs := []string{
		"[img]", "[img][/img]", "[snapback][b][/b][/snapback]", "[attachment=]",
		"[mergetime]", ":):):)", "[attachment]x[/attachment]",
	}

	for _, inp := range inputs {
		_, err := ParsePost(inp, nil)
		require.NoError(t, err, inp)
	}
}
