package api

import "github.com/go-playground/validator/v10"

// render formats
const (
	FormatPlain = "plain"
	FormatHTML  = "html"
	FormatTree  = "tree"

	renderFormatTag   = "render_format"
	renderFormatsList = "plain, html, tree"
)

var validRenderFormat validator.Func = func(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case FormatPlain, FormatHTML, FormatTree:
		return true
	}
	return false
}
