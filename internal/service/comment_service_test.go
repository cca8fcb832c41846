package service

import (
	"Ripple/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentService_CreateComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "discuss"})
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		comment, err := env.commentSvc.CreateComment(ctx, bob.ID, post.ID, &dto.CommentCreateDTO{
			Content: "first!",
		})
		assert.NoError(t, err)
		assert.Equal(t, "first!", comment.Content)
		assert.Equal(t, "bob", comment.Username)
	})

	t.Run("PostMissing", func(t *testing.T) {
		_, err := env.commentSvc.CreateComment(ctx, bob.ID, 99999, &dto.CommentCreateDTO{
			Content: "into the void",
		})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "discuss"})
	assert.NoError(t, err)
	comment, err := env.commentSvc.CreateComment(ctx, bob.ID, post.ID, &dto.CommentCreateDTO{Content: "draft"})
	assert.NoError(t, err)

	t.Run("NotOwner", func(t *testing.T) {
		err := env.commentSvc.UpdateComment(ctx, alice.ID, comment.ID, &dto.CommentUpdateDTO{Content: "edited by someone else"})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("Success", func(t *testing.T) {
		err := env.commentSvc.UpdateComment(ctx, bob.ID, comment.ID, &dto.CommentUpdateDTO{Content: "final"})
		assert.NoError(t, err)

		comments, err := env.commentSvc.GetCommentsByPostID(ctx, post.ID, 1, 20)
		assert.NoError(t, err)
		if assert.Len(t, comments, 1) {
			assert.Equal(t, "final", comments[0].Content)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		err := env.commentSvc.UpdateComment(ctx, bob.ID, 99999, &dto.CommentUpdateDTO{Content: "x"})
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "discuss"})
	assert.NoError(t, err)
	comment, err := env.commentSvc.CreateComment(ctx, bob.ID, post.ID, &dto.CommentCreateDTO{Content: "temp"})
	assert.NoError(t, err)

	t.Run("NotOwner", func(t *testing.T) {
		err := env.commentSvc.DeleteComment(ctx, alice.ID, comment.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("Success", func(t *testing.T) {
		err := env.commentSvc.DeleteComment(ctx, bob.ID, comment.ID)
		assert.NoError(t, err)

		count, err := env.commentSvc.GetPostCommentCount(ctx, post.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestCommentService_CommentsOrderedOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "thread"})
	assert.NoError(t, err)

	_, err = env.commentSvc.CreateComment(ctx, alice.ID, post.ID, &dto.CommentCreateDTO{Content: "one"})
	assert.NoError(t, err)
	_, err = env.commentSvc.CreateComment(ctx, alice.ID, post.ID, &dto.CommentCreateDTO{Content: "two"})
	assert.NoError(t, err)

	comments, err := env.commentSvc.GetCommentsByPostID(ctx, post.ID, 1, 20)
	assert.NoError(t, err)
	if assert.Len(t, comments, 2) {
		assert.Equal(t, "one", comments[0].Content)
		assert.Equal(t, "two", comments[1].Content)
	}
}
