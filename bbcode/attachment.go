package bbcode

import (
	"strconv"
	"strings"
)

// AttachmentType defines how the attached file is presented.
type AttachmentType string

const (
	AttachmentFile  AttachmentType = "file"
	AttachmentImage AttachmentType = "image"
)

// Attachment is a file uploaded together with the post.
type Attachment struct {
	ID   int64          `json:"id" yaml:"id"`
	Type AttachmentType `json:"type,omitempty" yaml:"type,omitempty"`
	Name string         `json:"name,omitempty" yaml:"name,omitempty"`
	URL  string         `json:"url,omitempty" yaml:"url,omitempty"`
	Size int64          `json:"size,omitempty" yaml:"size,omitempty"`
}

// IsImage reports whether the Attachment is displayed as a picture.
func (a Attachment) IsImage() bool {
	return a.Type == AttachmentImage
}

// ParseAttachmentRef decodes the payload of the [attachment] tag, e.g. "12:photo.jpg".
// The ID is everything before the first ':'. An ID which is not a number is decoded as 0.
func ParseAttachmentRef(ref string) Attachment {
	ref = strings.TrimSpace(ref)
	if len(ref) >= 2 && ref[0] == '"' && ref[len(ref)-1] == '"' {
		ref = ref[1 : len(ref)-1]
	}

	idPart, name, _ := strings.Cut(ref, ":")

	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil || id < 0 {
		id = 0
	}

	return Attachment{ID: id, Name: name}
}

// ParsePost parses the text of a post and resolves its [attachment] tags against the
// attachments uploaded with it.
//
// Every referenced attachment receives the full record. Attachments which the text never
// references are appended at the end: images wrapped in a spoiler titled
// [Options.ImagesLabel], then files preceded by the [Options.FilesLabel] text.
func ParsePost(text string, attachments []Attachment, opts ...Option) ([]Node[PlainText], error) {
	o := newOptions(opts)

	recs := newAttachmentRecords(attachments)
	opts = append(opts[:len(opts):len(opts)], withAttachmentRecords(recs))

	nodes, err := Parse(PlainText(text), opts...)
	if err != nil {
		return nil, err
	}

	var images, files []Node[PlainText]
	for _, a := range attachments {
		if recs.used[a.ID] {
			continue
		}
		// the same ID listed twice is only shown once
		recs.used[a.ID] = true

		n := attachmentNode(a)
		if a.IsImage() {
			images = append(images, n)
		} else {
			files = append(files, n)
		}
	}

	if len(images) > 0 {
		nodes = append(nodes, Node[PlainText]{
			Kind:     KindSpoiler,
			Attr:     PlainText(o.ImagesLabel),
			Children: images,
		})
	}

	if len(files) > 0 {
		nodes = append(nodes, NewText(PlainText(o.FilesLabel)))
		nodes = append(nodes, files...)
	}

	return nodes, nil
}

// attachmentRecords are the attachments of the post, looked up by the builder
// as soon as it meets an [attachment] tag.
type attachmentRecords struct {
	records map[int64]Attachment
	used    map[int64]bool
}

func newAttachmentRecords(attachments []Attachment) *attachmentRecords {
	r := &attachmentRecords{
		records: make(map[int64]Attachment, len(attachments)),
		used:    make(map[int64]bool, len(attachments)),
	}
	for _, a := range attachments {
		r.records[a.ID] = a
	}
	return r
}

func withAttachmentRecords(r *attachmentRecords) Option {
	return func(o *Options) {
		o.attachments = r
	}
}

// resolve fills in the record of the attachment Node found at the pos of the input.
func (r *attachmentRecords) resolve(a *Attachment, pos int, w *Warnings) {
	rec, ok := r.records[a.ID]
	if !ok {
		w.add(IssueUnknownAttachment, pos, "attachment %d is not uploaded with the post", a.ID)
		return
	}

	*a = rec
	r.used[rec.ID] = true
}

func attachmentNode(a Attachment) Node[PlainText] {
	return Node[PlainText]{
		Kind:       KindAttachment,
		Payload:    PlainText(strconv.FormatInt(a.ID, 10) + ":" + a.Name),
		Attachment: a,
	}
}
