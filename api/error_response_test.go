package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

// newRequestValidator validates the request structs the way gin does, naming the fields by json tags.
func newRequestValidator(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	require.NoError(t, v.RegisterValidation(renderFormatTag, validRenderFormat))

	return v
}

func TestExtractErrorFields_NonValidationError(t *testing.T) {
	fields := ExtractErrorFields(errors.New("connection reset"))
	require.Empty(t, fields)
}

func TestExtractErrorFields_Requests(t *testing.T) {
	v := newRequestValidator(t)

	manyAttachments := make([]AttachmentRequest, 101)
	for i := range manyAttachments {
		manyAttachments[i] = AttachmentRequest{ID: int64(i + 1)}
	}

	testCases := []struct {
		name    string
		request any
		want    []ErrorField
	}{
		{
			name:    "MissingText",
			request: RenderRequest{},
			want:    []ErrorField{{"text", "this field is required"}},
		},
		{
			name:    "UnknownFormat",
			request: RenderRequest{Text: "[b]hi[/b]", Format: "markdown"},
			want:    []ErrorField{{"format", "must be one of: plain, html, tree"}},
		},
		{
			name:    "NegativeAuthor",
			request: RenderRequest{Text: "hi", AuthorID: -1},
			want:    []ErrorField{{"author_id", "value is too short"}},
		},
		{
			name:    "TooManyAttachments",
			request: RenderRequest{Text: "hi", Attachments: manyAttachments},
			want:    []ErrorField{{"attachments", "too many items"}},
		},
		{
			name: "AttachmentWithoutID",
			request: RenderRequest{
				Text:        "hi",
				Attachments: []AttachmentRequest{{Name: "a.txt"}},
			},
			want: []ErrorField{{"id", "this field is required"}},
		},
		{
			name: "RenderedAttachmentType",
			request: RenderRequest{
				Text:        "hi",
				Attachments: []AttachmentRequest{{ID: 1, Type: "video"}},
			},
			want: []ErrorField{{"type", "must be one of the allowed values"}},
		},
		{
			name:    "EmptyPost",
			request: CreatePostRequest{},
			want: []ErrorField{
				{"title", "this field is required"},
				{"body", "this field is required"},
			},
		},
		{
			name:    "LongTitle",
			request: CreatePostRequest{Title: strings.Repeat("t", 256), Body: "body"},
			want:    []ErrorField{{"title", "value is too long"}},
		},
		{
			name: "UploadType",
			request: CreatePostRequest{
				Title:       "title",
				Body:        "body",
				Attachments: []AttachmentUpload{{Type: "archive", Name: "a.zip"}},
			},
			want: []ErrorField{{"type", "must be one of the allowed values"}},
		},
		{
			name: "UploadURL",
			request: CreatePostRequest{
				Title:       "title",
				Body:        "body",
				Attachments: []AttachmentUpload{{Type: "image", Name: "cat.png", URL: "example.com/cat.png"}},
			},
			want: []ErrorField{{"url", "invalid URL format"}},
		},
		{
			name: "UploadWithoutName",
			request: CreatePostRequest{
				Title:       "title",
				Body:        "body",
				Attachments: []AttachmentUpload{{Type: "file", Size: -5}},
			},
			want: []ErrorField{
				{"name", "this field is required"},
				{"size", "value is too short"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.request)
			require.Error(t, err)
			require.Equal(t, tc.want, ExtractErrorFields(err))
		})
	}
}

func TestExtractErrorFields_ValidRequests(t *testing.T) {
	v := newRequestValidator(t)

	for _, format := range []string{"", FormatPlain, FormatHTML, FormatTree} {
		req := RenderRequest{
			Text:        "[attachment=1]",
			Format:      format,
			Attachments: []AttachmentRequest{{ID: 1, Type: "image", URL: "https://cdn.example.com/cat.png"}},
		}
		require.NoError(t, v.Struct(req), format)
	}
}

func TestGetBindingErrorMessage(t *testing.T) {
	testCases := []struct {
		tag  string
		kind string
		want string
	}{
		{tag: "min", kind: "slice", want: "too few items"},
		{tag: "min", kind: "string", want: "value is too short"},
		{tag: "max", kind: "slice", want: "too many items"},
		{tag: "max", kind: "string", want: "value is too long"},
		{tag: renderFormatTag, kind: "string", want: "must be one of: plain, html, tree"},
		{tag: "oneof", kind: "string", want: "must be one of the allowed values"},
		{tag: "url", kind: "string", want: "invalid URL format"},
		{tag: "hexcolor", kind: "string", want: "invalid input"},
	}

	for _, tc := range testCases {
		t.Run(tc.tag+"_"+tc.kind, func(t *testing.T) {
			require.Equal(t, tc.want, getBindingErrorMessage(tc.tag, tc.kind))
		})
	}
}

func TestExtractErrorFromBuffer(t *testing.T) {
	exp := ErrorResponse{
		Error: ErrInvalidParams.Error(),
		Fields: []ErrorField{
			{FieldName: "format", ErrorMessage: "must be one of: " + renderFormatsList},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(exp))

	got, err := extractErrorFromBuffer(&buf)
	require.NoError(t, err)
	require.Equal(t, exp, *got)
}
