package bbcode

// Options gathers the optional settings of the tokenizer, the tree builder and the
// post assembly.
type Options struct {
	// Limits bounds the scanning of untrusted markup.
	Limits Limits

	// Smiles is the emoticon table. [DefaultSmiles] is used when nil.
	Smiles *SmileTable

	// Warnings collects recoverable problems. Nothing is recorded when nil.
	Warnings *Warnings

	// ImagesLabel is the title of the spoiler which wraps the images attached but not
	// placed in the post.
	ImagesLabel string

	// FilesLabel is the text which precedes the files attached but not placed in the post.
	FilesLabel string

	// attachments is set by [ParsePost] only
	attachments *attachmentRecords
}

const (
	DefaultImagesLabel = "Attached images"
	DefaultFilesLabel  = "Attached files:"
)

// Option is a decorator function which allows to fill optional fields of the [Options].
type Option func(o *Options)

func WithLimits(l Limits) Option {
	return func(o *Options) {
		o.Limits = l
	}
}

func WithSmiles(t *SmileTable) Option {
	return func(o *Options) {
		o.Smiles = t
	}
}

func WithWarnings(w *Warnings) Option {
	return func(o *Options) {
		o.Warnings = w
	}
}

// WithAttachmentLabels overrides the labels of the trailer built by [ParsePost].
func WithAttachmentLabels(images, files string) Option {
	return func(o *Options) {
		o.ImagesLabel = images
		o.FilesLabel = files
	}
}

func newOptions(opts []Option) Options {
	o := Options{
		ImagesLabel: DefaultImagesLabel,
		FilesLabel:  DefaultFilesLabel,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.Smiles == nil {
		o.Smiles = DefaultSmiles
	}

	o.Limits = o.Limits.withDefaults()

	return o
}
