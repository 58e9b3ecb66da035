package api

import (
	"net/http"

	"github.com/Drolfothesgnir/bbpost/bbcode"
	"github.com/Drolfothesgnir/bbpost/render"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttachmentRequest struct {
	ID   int64  `json:"id" binding:"required,min=1"`
	Type string `json:"type" binding:"omitempty,oneof=file image"`
	Name string `json:"name" binding:"max=255"`
	URL  string `json:"url" binding:"omitempty,url"`
	Size int64  `json:"size" binding:"min=0"`
}

type RenderRequest struct {
	Text        string              `json:"text" binding:"required,max=65536"`
	Format      string              `json:"format" binding:"omitempty,render_format"`
	AuthorID    int64               `json:"author_id" binding:"min=0"`
	Attachments []AttachmentRequest `json:"attachments" binding:"max=100,dive"`
}

type WarningResponse struct {
	Issue       string `json:"issue"`
	Pos         int    `json:"pos"`
	Description string `json:"description"`
}

// RenderResponse carries one of Text, HTML or Nodes, depending on the Format.
type RenderResponse struct {
	Format   string                          `json:"format"`
	Text     string                          `json:"text,omitempty"`
	HTML     string                          `json:"html,omitempty"`
	Nodes    []bbcode.Node[bbcode.PlainText] `json:"nodes,omitempty"`
	Warnings []WarningResponse               `json:"warnings"`
}

func (s *Service) renderText(ctx *gin.Context) {
	var req RenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...),
		)
		return
	}

	attachments := make([]bbcode.Attachment, len(req.Attachments))
	for i, a := range req.Attachments {
		attachments[i] = bbcode.Attachment{
			ID:   a.ID,
			Type: bbcode.AttachmentType(a.Type),
			Name: a.Name,
			URL:  a.URL,
			Size: a.Size,
		}
	}

	resp, err := s.render(renderParams{
		text:        req.Text,
		attachments: attachments,
		format:      req.Format,
		viewer:      viewerFromCtx(ctx),
		authorID:    req.AuthorID,
	})
	if err != nil {
		log.Error().Err(err).Msg("cannot render the text")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrRenderFailed))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

type renderParams struct {
	text        string
	attachments []bbcode.Attachment
	format      string
	viewer      render.Viewer
	authorID    int64
}

// render parses the post and renders it in the requested format. HTML is the default.
func (s *Service) render(p renderParams) (RenderResponse, error) {
	warnings, err := bbcode.NewWarnings(bbcode.WarnOverflowTrunc, s.config.WarningsCap)
	if err != nil {
		return RenderResponse{}, err
	}

	nodes, err := bbcode.ParsePost(p.text, p.attachments,
		bbcode.WithWarnings(warnings),
		bbcode.WithLimits(bbcode.Limits{MaxDepth: s.config.MaxNestingDepth}),
	)
	if err != nil {
		return RenderResponse{}, err
	}

	opts := render.Options{Viewer: p.viewer, AuthorID: p.authorID}
	resp := RenderResponse{Format: p.format}

	switch p.format {
	case FormatPlain:
		resp.Text = render.Render(nodes, opts).String()
	case FormatTree:
		resp.Nodes = render.Redact(nodes, p.viewer, p.authorID)
	default:
		resp.Format = FormatHTML
		resp.HTML = render.HTML(nodes, opts)
	}

	list := warnings.List()
	resp.Warnings = make([]WarningResponse, len(list))
	for i, w := range list {
		resp.Warnings[i] = WarningResponse{
			Issue:       w.Issue.String(),
			Pos:         w.Pos,
			Description: w.Description,
		}
	}

	return resp, nil
}
