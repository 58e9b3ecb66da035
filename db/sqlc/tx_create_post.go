package db

import (
	"context"

	"github.com/Drolfothesgnir/bbpost/util"
	"github.com/jackc/pgx/v5"
)

const opCreatePost = "create-post"

var readOnlyTx = pgx.TxOptions{AccessMode: pgx.ReadOnly}

type CreateAttachmentParams struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type CreatePostTxParams struct {
	UserID      int64                    `json:"user_id"`
	Title       string                   `json:"title"`
	Body        string                   `json:"body"`
	Attachments []CreateAttachmentParams `json:"attachments"`
}

// CreatePostTx inserts the post together with its attachments.
// Returns KindInvalid when an attachment is rejected by the schema, e.g. an unknown type.
func (s *SQLStore) CreatePostTx(ctx context.Context, arg CreatePostTxParams) (PostForRender, error) {
	var result PostForRender

	err := s.execTx(ctx, pgx.TxOptions{}, func(q *Queries) error {
		post, err := q.createPost(ctx, createPostParams{
			UserID: arg.UserID,
			Title:  arg.Title,
			Body:   arg.Body,
		})
		if err != nil {
			return sqlError(opCreatePost, opDetails{entity: entPost}, err)
		}

		attachments := make([]Attachment, 0, len(arg.Attachments))

		for _, a := range arg.Attachments {
			attachment, err := q.createAttachment(ctx, createAttachmentParams{
				PostID: post.ID,
				Type:   a.Type,
				Name:   a.Name,
				Url:    util.StringToPgxText(&a.URL),
				Size:   a.Size,
			})
			if err != nil {
				return sqlError(opCreatePost, opDetails{entity: entAttachment, postID: post.ID}, err)
			}

			attachments = append(attachments, attachment)
		}

		result = PostForRender{Post: post, Attachments: attachments}
		return nil
	})

	return result, err
}
