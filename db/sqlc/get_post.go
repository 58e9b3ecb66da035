package db

import (
	"context"
	"fmt"
)

const (
	opGetPost             = "get-post"
	opListPostAttachments = "list-post-attachments"
	opGetPostForRender    = "get-post-for-render"
)

// GetPost returns the post by its ID. Returns KindNotFound if the post does not
// exist and KindDeleted if it is soft-deleted.
func (s *SQLStore) GetPost(ctx context.Context, postID int64) (Post, error) {
	return getLivePost(ctx, s.Queries, opGetPost, postID)
}

// ListPostAttachments returns the attachments uploaded with the post, ordered by ID.
// A post without attachments yields an empty slice.
func (s *SQLStore) ListPostAttachments(ctx context.Context, postID int64) ([]Attachment, error) {
	attachments, err := s.listPostAttachments(ctx, postID)
	if err != nil {
		return nil, sqlError(
			opListPostAttachments,
			opDetails{entity: entAttachment, postID: postID},
			err,
		)
	}

	return attachments, nil
}

// PostForRender is everything needed to render the post.
type PostForRender struct {
	Post        Post         `json:"post"`
	Attachments []Attachment `json:"attachments"`
}

// GetPostForRender reads the post and its attachments from the same snapshot.
func (s *SQLStore) GetPostForRender(ctx context.Context, postID int64) (PostForRender, error) {
	var result PostForRender

	err := s.execTx(ctx, readOnlyTx, func(q *Queries) error {
		post, err := getLivePost(ctx, q, opGetPostForRender, postID)
		if err != nil {
			return err
		}

		attachments, err := q.listPostAttachments(ctx, postID)
		if err != nil {
			return sqlError(
				opGetPostForRender,
				opDetails{entity: entAttachment, postID: postID},
				err,
			)
		}

		result = PostForRender{Post: post, Attachments: attachments}
		return nil
	})

	return result, err
}

func getLivePost(ctx context.Context, q *Queries, op string, postID int64) (Post, error) {
	post, err := q.getPost(ctx, postID)
	if err != nil {
		return Post{}, sqlError(op, opDetails{entity: entPost, entityID: postID}, err)
	}

	if post.IsDeleted {
		return Post{}, newOpError(
			op,
			KindDeleted,
			entPost,
			fmt.Errorf("post with id %d is deleted", postID),
			withEntityID(postID),
		)
	}

	return post, nil
}
