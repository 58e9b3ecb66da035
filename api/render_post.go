package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Drolfothesgnir/bbpost/bbcode"
	db "github.com/Drolfothesgnir/bbpost/db/sqlc"
	"github.com/Drolfothesgnir/bbpost/tmpstore"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const jsonContentType = "application/json; charset=utf-8"

type RenderPostQuery struct {
	Format string `form:"format" json:"format" binding:"omitempty,render_format"`
}

// renderPost renders the stored post for the reader. The renditions are cached,
// the cache failures are logged and the post is rendered anyway.
func (s *Service) renderPost(ctx *gin.Context) {
	postID := extractPostIDFromCtx(ctx)

	// pre-filled with default values
	req := RenderPostQuery{
		Format: FormatHTML,
	}

	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...),
		)
		return
	}

	post, err := s.store.GetPostForRender(ctx, postID)
	if err != nil {
		if db.IsNotFound(err) {
			errField := ErrorField{"post_id", fmt.Sprintf("Post with id [%d] not found", postID)}
			ctx.JSON(http.StatusNotFound, NewErrorResponse(ErrPostNotFound, errField))
			return
		}

		log.Error().Err(err).Int64("post_id", postID).Msg("cannot load the post")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
		return
	}

	viewer := viewerFromCtx(ctx)

	key := tmpstore.RenderKey{
		PostID:    postID,
		UpdatedAt: post.Post.LastModifiedAt.Time,
		Format:    req.Format,
		Role:      string(viewer.Role),
		ViewerID:  viewer.UserID,
	}

	if s.cache != nil {
		data, err := s.cache.GetRender(ctx, key)
		if err == nil {
			ctx.Data(http.StatusOK, jsonContentType, data)
			return
		}

		if !errors.Is(err, tmpstore.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key.String()).Msg("render cache is not available")
		}
	}

	resp, err := s.render(renderParams{
		text:        post.Post.Body,
		attachments: bbcodeAttachments(post.Attachments),
		format:      req.Format,
		viewer:      viewer,
		authorID:    post.Post.UserID,
	})
	if err != nil {
		log.Error().Err(err).Int64("post_id", postID).Msg("cannot render the post")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrRenderFailed))
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Int64("post_id", postID).Msg("cannot encode the rendered post")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
		return
	}

	if s.cache != nil {
		if err := s.cache.SaveRender(ctx, key, data, s.config.RenderCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key.String()).Msg("cannot cache the rendered post")
		}
	}

	ctx.Data(http.StatusOK, jsonContentType, data)
}

func bbcodeAttachments(attachments []db.Attachment) []bbcode.Attachment {
	out := make([]bbcode.Attachment, len(attachments))
	for i, a := range attachments {
		out[i] = bbcode.Attachment{
			ID:   a.ID,
			Type: bbcode.AttachmentType(a.Type),
			Name: a.Name,
			URL:  a.Url.String,
			Size: a.Size,
		}
	}
	return out
}
