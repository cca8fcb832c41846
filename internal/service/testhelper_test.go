package service

import (
	"Ripple/internal/api/config"
	"Ripple/internal/model"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/pkg/security"
	"Ripple/internal/repository"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Post{},
		&model.UserFollow{},
		&model.Like{},
		&model.Comment{},
		&model.Hashtag{},
		&model.PostHashtag{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func setupTestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.Rdb = redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
}

func setupTestConfig() {
	config.Cfg = &config.Config{
		MinIO: config.MinIOConfig{
			Endpoint:   "127.0.0.1:9000",
			MainBucket: "ripple",
		},
	}
}

// newTestEnv 组装一套完整的 service 依赖
type testEnv struct {
	db             *gorm.DB
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
	postRepo       repository.PostRepo
	hashtagRepo    repository.HashtagRepo
	actionRepo     repository.PostActionRepo
	commentRepo    repository.CommentRepo

	userSvc    UserService
	followSvc  UserFollowService
	postSvc    PostService
	actionSvc  PostActionService
	commentSvc CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	setupTestConfig()
	setupTestRedis(t)
	db := setupTestDB(t)

	env := &testEnv{
		db:             db,
		userRepo:       repository.NewUserRepo(db),
		userFollowRepo: repository.NewUserFollowRepo(db),
		postRepo:       repository.NewPostRepository(db),
		hashtagRepo:    repository.NewHashtagRepository(db),
		actionRepo:     repository.NewPostActionRepo(db),
		commentRepo:    repository.NewCommentRepo(db),
	}

	env.followSvc = NewUserFollowService(env.userFollowRepo, env.userRepo)
	env.userSvc = NewUserService(env.userRepo, env.followSvc)
	env.postSvc = NewPostService(env.postRepo, env.hashtagRepo, env.userRepo, env.commentRepo)
	env.actionSvc = NewPostActionService(env.actionRepo, env.postRepo)
	env.commentSvc = NewCommentService(env.commentRepo, env.postRepo, env.userRepo)

	return env
}

func (e *testEnv) createUser(t *testing.T, email, username string) *model.User {
	hash, err := security.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Email:    email,
		Username: username,
		Password: hash,
	}
	profile := &model.Profile{AvatarURL: "default_avatar.png"}
	if err := e.userRepo.CreateUser(context.Background(), user, profile); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
