package service

import (
	"Ripple/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostActionService_LikePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "likeable"})
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		err := env.actionSvc.LikePost(ctx, bob.ID, post.ID)
		assert.NoError(t, err)

		isLiked, err := env.actionSvc.IsLiked(ctx, bob.ID, post.ID)
		assert.NoError(t, err)
		assert.True(t, isLiked)
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := env.actionSvc.LikePost(ctx, bob.ID, post.ID)
		assert.ErrorIs(t, err, ErrLikeExist)
	})

	t.Run("PostMissing", func(t *testing.T) {
		err := env.actionSvc.LikePost(ctx, bob.ID, 99999)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostActionService_CancelLikePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "likeable"})
	assert.NoError(t, err)

	t.Run("NotLiked", func(t *testing.T) {
		err := env.actionSvc.CancelLikePost(ctx, bob.ID, post.ID)
		assert.ErrorIs(t, err, ErrLikeNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, env.actionSvc.LikePost(ctx, bob.ID, post.ID))

		err := env.actionSvc.CancelLikePost(ctx, bob.ID, post.ID)
		assert.NoError(t, err)

		isLiked, err := env.actionSvc.IsLiked(ctx, bob.ID, post.ID)
		assert.NoError(t, err)
		assert.False(t, isLiked)
	})
}

func TestPostActionService_LikeCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")
	carol := env.createUser(t, "carol@example.com", "carol")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "popular"})
	assert.NoError(t, err)

	assert.NoError(t, env.actionSvc.LikePost(ctx, bob.ID, post.ID))
	assert.NoError(t, env.actionSvc.LikePost(ctx, carol.ID, post.ID))

	count, err := env.actionSvc.GetPostLikeCount(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 取消点赞后缓存失效，计数回落
	assert.NoError(t, env.actionSvc.CancelLikePost(ctx, carol.ID, post.ID))
	count, err = env.actionSvc.GetPostLikeCount(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 点赞数也应反映在帖子详情的聚合计数里
	detail, err := env.postSvc.GetPostDetail(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), detail.Post.LikeCount)
}

func TestPostActionService_IsLikedAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")

	post, err := env.postSvc.CreatePost(ctx, alice.ID, &dto.PostCreateDTO{Content: "whatever"})
	assert.NoError(t, err)

	isLiked, err := env.actionSvc.IsLiked(ctx, 0, post.ID)
	assert.NoError(t, err)
	assert.False(t, isLiked)
}
