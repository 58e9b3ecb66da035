package api

import (
	"fmt"
	"net/http"
	"time"

	db "github.com/Drolfothesgnir/bbpost/db/sqlc"
	"github.com/Drolfothesgnir/bbpost/token"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttachmentUpload struct {
	Type string `json:"type" binding:"required,oneof=file image"`
	Name string `json:"name" binding:"required,max=255"`
	URL  string `json:"url" binding:"omitempty,url"`
	Size int64  `json:"size" binding:"min=0"`
}

type CreatePostRequest struct {
	Title       string             `json:"title" binding:"required,max=255"`
	Body        string             `json:"body" binding:"required,max=65536"`
	Attachments []AttachmentUpload `json:"attachments" binding:"max=100,dive"`
}

type AttachmentResponse struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Size int64  `json:"size"`
}

type PostResponse struct {
	ID             int64                `json:"id"`
	UserID         int64                `json:"user_id"`
	Title          string               `json:"title"`
	Body           string               `json:"body"`
	CreatedAt      time.Time            `json:"created_at"`
	LastModifiedAt time.Time            `json:"last_modified_at"`
	Attachments    []AttachmentResponse `json:"attachments"`
}

func newPostResponse(post db.Post, attachments []db.Attachment) PostResponse {
	resp := PostResponse{
		ID:             post.ID,
		UserID:         post.UserID,
		Title:          post.Title,
		Body:           post.Body,
		CreatedAt:      post.CreatedAt.Time,
		LastModifiedAt: post.LastModifiedAt.Time,
		Attachments:    make([]AttachmentResponse, len(attachments)),
	}

	for i, a := range attachments {
		resp.Attachments[i] = AttachmentResponse{
			ID:   a.ID,
			Type: a.Type,
			Name: a.Name,
			URL:  a.Url.String,
			Size: a.Size,
		}
	}

	return resp
}

func (s *Service) createPost(ctx *gin.Context) {
	// get token after auth middleware use
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...),
		)
		return
	}

	arg := db.CreatePostTxParams{
		UserID:      authPayload.UserID,
		Title:       req.Title,
		Body:        req.Body,
		Attachments: make([]db.CreateAttachmentParams, len(req.Attachments)),
	}

	for i, a := range req.Attachments {
		arg.Attachments[i] = db.CreateAttachmentParams{
			Type: a.Type,
			Name: a.Name,
			URL:  a.URL,
			Size: a.Size,
		}
	}

	result, err := s.store.CreatePostTx(ctx, arg)
	if err != nil {
		if db.IsKind(err, db.KindInvalid) {
			ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams))
			return
		}

		log.Error().Err(err).Int64("user_id", authPayload.UserID).Msg("cannot create the post")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
		return
	}

	ctx.JSON(http.StatusCreated, newPostResponse(result.Post, result.Attachments))
}

// getPost returns the source of the post with its attachments.
func (s *Service) getPost(ctx *gin.Context) {
	postID := extractPostIDFromCtx(ctx)

	post, err := s.store.GetPost(ctx, postID)
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

	attachments, err := s.store.ListPostAttachments(ctx, postID)
	if err != nil {
		log.Error().Err(err).Int64("post_id", postID).Msg("cannot load the post attachments")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
		return
	}

	ctx.JSON(http.StatusOK, newPostResponse(post, attachments))
}
