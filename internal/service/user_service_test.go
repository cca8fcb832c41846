package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		err := env.userSvc.Register(ctx, &dto.RegisterDTO{
			Email:     "alice@example.com",
			Username:  "alice",
			Password:  "password123",
			Password2: "password123",
		})
		assert.NoError(t, err)

		user, err := env.userRepo.GetUserByEmail(ctx, "alice@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		// 密码必须以散列形式存储
		assert.NotEqual(t, "password123", user.Password)
		assert.Equal(t, "default_avatar.png", user.Profile.AvatarURL)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		err := env.userSvc.Register(ctx, &dto.RegisterDTO{
			Email:     "bob@example.com",
			Username:  "bob",
			Password:  "password123",
			Password2: "different456",
		})
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		err := env.userSvc.Register(ctx, &dto.RegisterDTO{
			Email:     "alice@example.com",
			Username:  "alice2",
			Password:  "password123",
			Password2: "password123",
		})
		assert.ErrorIs(t, err, ErrEmailExist)
	})
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "alice@example.com", "alice")

	t.Run("Success", func(t *testing.T) {
		token, err := env.userSvc.Login(ctx, &dto.CredentialDTO{
			Email:    "alice@example.com",
			Password: "password123",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := security.ValidateToken(token)
		assert.NoError(t, err)
		assert.NotZero(t, claims.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := env.userSvc.Login(ctx, &dto.CredentialDTO{
			Email:    "alice@example.com",
			Password: "wrongpassword",
		})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// 未注册邮箱与密码错误返回同一个错误，避免泄露账号是否存在
		_, err := env.userSvc.Login(ctx, &dto.CredentialDTO{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})
}

func TestUserService_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice@example.com", "alice")

	token, err := security.GenerateToken(user.ID)
	assert.NoError(t, err)

	err = env.userSvc.Logout(ctx, token)
	assert.NoError(t, err)

	// 登出后签名应出现在拒绝名单中
	signature, err := security.ExtractSignature(token)
	assert.NoError(t, err)
	value, err := redis.GetValue(ctx, consts.TokenDenyKey+signature)
	assert.NoError(t, err)
	assert.NotEmpty(t, value)
}

func TestUserService_LogoutInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	err := env.userSvc.Logout(context.Background(), "not-a-valid-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestUserService_GetUserInfo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice@example.com", "alice")

	t.Run("Found", func(t *testing.T) {
		info, err := env.userSvc.GetUserInfo(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", info.Username)
		assert.Equal(t, "alice@example.com", info.Email)
		assert.Equal(t, int64(0), info.FollowerCount)
		assert.Equal(t, int64(0), info.FollowingCount)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := env.userSvc.GetUserInfo(ctx, 99999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice@example.com", "alice")

	bio := "hello world"
	username := "alice_v2"
	err := env.userSvc.UpdateProfile(ctx, user.ID, &dto.ProfileUpdateDTO{
		Username: &username,
		Bio:      &bio,
	})
	assert.NoError(t, err)

	updated, err := env.userRepo.GetUserById(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice_v2", updated.Username)
	if assert.NotNil(t, updated.Profile.Bio) {
		assert.Equal(t, "hello world", *updated.Profile.Bio)
	}
}
