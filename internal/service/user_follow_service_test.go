package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFollowService_FollowUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	t.Run("Success", func(t *testing.T) {
		err := env.followSvc.FollowUser(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)

		isFollowing, err := env.followSvc.IsFollowing(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
		assert.True(t, isFollowing)
	})

	t.Run("SelfFollow", func(t *testing.T) {
		err := env.followSvc.FollowUser(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, ErrFollowSelf)
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := env.followSvc.FollowUser(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrFollowExist)
	})

	t.Run("TargetMissing", func(t *testing.T) {
		err := env.followSvc.FollowUser(ctx, alice.ID, 99999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserFollowService_UnfollowUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")

	t.Run("NotFollowing", func(t *testing.T) {
		err := env.followSvc.UnfollowUser(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrFollowNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, env.followSvc.FollowUser(ctx, alice.ID, bob.ID))

		err := env.followSvc.UnfollowUser(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)

		isFollowing, err := env.followSvc.IsFollowing(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
		assert.False(t, isFollowing)
	})
}

func TestUserFollowService_Counts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")
	carol := env.createUser(t, "carol@example.com", "carol")

	assert.NoError(t, env.followSvc.FollowUser(ctx, alice.ID, carol.ID))
	assert.NoError(t, env.followSvc.FollowUser(ctx, bob.ID, carol.ID))

	followerCount, err := env.followSvc.GetUserFollowerCount(ctx, carol.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), followerCount)

	followingCount, err := env.followSvc.GetUserFollowingCount(ctx, alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), followingCount)

	// 取关后缓存应被失效，重新计算
	assert.NoError(t, env.followSvc.UnfollowUser(ctx, bob.ID, carol.ID))
	followerCount, err = env.followSvc.GetUserFollowerCount(ctx, carol.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), followerCount)
}

func TestUserFollowService_Lists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "alice")
	bob := env.createUser(t, "bob@example.com", "bob")
	carol := env.createUser(t, "carol@example.com", "carol")

	assert.NoError(t, env.followSvc.FollowUser(ctx, alice.ID, carol.ID))
	assert.NoError(t, env.followSvc.FollowUser(ctx, bob.ID, carol.ID))

	followers, err := env.followSvc.GetUserFollowers(ctx, carol.ID, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := env.followSvc.GetUserFollowing(ctx, alice.ID, 10, 0)
	assert.NoError(t, err)
	if assert.Len(t, following, 1) {
		assert.Equal(t, "carol", following[0].Username)
	}
}
