package db

import (
	"context"
	"testing"

	"github.com/Drolfothesgnir/bbpost/util"
	"github.com/stretchr/testify/require"
)

func createRandomPost(t *testing.T, attachments ...CreateAttachmentParams) PostForRender {
	t.Helper()

	store := requireStore(t)

	arg := CreatePostTxParams{
		UserID:      util.RandomInt(1, 1000),
		Title:       util.RandomString(10),
		Body:        "[b]" + util.RandomString(20) + "[/b]",
		Attachments: attachments,
	}

	result, err := store.CreatePostTx(context.Background(), arg)
	require.NoError(t, err)

	post := result.Post
	require.NotZero(t, post.ID)
	require.Equal(t, arg.UserID, post.UserID)
	require.Equal(t, arg.Title, post.Title)
	require.Equal(t, arg.Body, post.Body)
	require.False(t, post.IsDeleted)
	require.NotZero(t, post.CreatedAt)
	require.Len(t, result.Attachments, len(attachments))

	return result
}

func randomAttachment(kind string) CreateAttachmentParams {
	return CreateAttachmentParams{
		Type: kind,
		Name: util.RandomFileName("png"),
		URL:  util.RandomURL(),
		Size: util.RandomInt(1, 1<<20),
	}
}

func TestCreatePostTx(t *testing.T) {
	created := createRandomPost(t, randomAttachment("image"), randomAttachment("file"))

	for i, a := range created.Attachments {
		require.NotZero(t, a.ID)
		require.Equal(t, created.Post.ID, a.PostID)
		require.True(t, a.Url.Valid, "attachment %d", i)
	}
}

func TestCreatePostTx_InvalidAttachmentType(t *testing.T) {
	store := requireStore(t)

	_, err := store.CreatePostTx(context.Background(), CreatePostTxParams{
		UserID:      1,
		Title:       util.RandomString(6),
		Body:        "text",
		Attachments: []CreateAttachmentParams{randomAttachment("video")},
	})
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, opCreatePost, opErr.Op)
	require.Equal(t, KindInvalid, opErr.Kind)
	require.Equal(t, entAttachment, opErr.Entity)
	require.Equal(t, "attachments_type_check", opErr.FailingField)
}

func TestCreatePostTx_AttachmentWithoutURL(t *testing.T) {
	a := randomAttachment("file")
	a.URL = " "

	created := createRandomPost(t, a)
	require.False(t, created.Attachments[0].Url.Valid)
}

func TestGetPost(t *testing.T) {
	store := requireStore(t)
	created := createRandomPost(t)

	post, err := store.GetPost(context.Background(), created.Post.ID)
	require.NoError(t, err)
	require.Equal(t, created.Post, post)
}

func TestGetPost_NotFound(t *testing.T) {
	store := requireStore(t)

	_, err := store.GetPost(context.Background(), -1)
	require.Error(t, err)
	require.True(t, IsKind(err, KindNotFound))
	require.True(t, IsNotFound(err))

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, opGetPost, opErr.Op)
	require.Equal(t, entPost, opErr.Entity)
	require.EqualValues(t, -1, opErr.EntityID)
}

func TestGetPost_Deleted(t *testing.T) {
	store := requireStore(t)
	created := createRandomPost(t)

	_, err := store.softDeletePost(context.Background(), created.Post.ID)
	require.NoError(t, err)

	_, err = store.GetPost(context.Background(), created.Post.ID)
	require.Error(t, err)
	require.True(t, IsKind(err, KindDeleted))
	require.True(t, IsNotFound(err))

	_, err = store.GetPostForRender(context.Background(), created.Post.ID)
	require.True(t, IsKind(err, KindDeleted))
}

func TestListPostAttachments(t *testing.T) {
	store := requireStore(t)
	created := createRandomPost(t, randomAttachment("image"), randomAttachment("image"), randomAttachment("file"))

	attachments, err := store.ListPostAttachments(context.Background(), created.Post.ID)
	require.NoError(t, err)
	require.Equal(t, created.Attachments, attachments)

	bare := createRandomPost(t)
	attachments, err = store.ListPostAttachments(context.Background(), bare.Post.ID)
	require.NoError(t, err)
	require.NotNil(t, attachments)
	require.Empty(t, attachments)
}

func TestGetPostForRender(t *testing.T) {
	store := requireStore(t)
	created := createRandomPost(t, randomAttachment("image"))

	got, err := store.GetPostForRender(context.Background(), created.Post.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = store.GetPostForRender(context.Background(), -1)
	require.True(t, IsKind(err, KindNotFound))
}
