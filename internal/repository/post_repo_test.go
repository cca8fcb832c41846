package repository

import (
	"Ripple/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	user := &model.User{Email: email, Username: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestPostRepo_MarkPublished(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice@example.com")

	scheduledAt := time.Now().Add(-time.Minute)
	post := &model.Post{
		UserID:      user.ID,
		Content:     "scheduled",
		ScheduledAt: &scheduledAt,
		IsPublished: false,
	}
	assert.NoError(t, repo.CreatePost(ctx, post, nil))

	t.Run("PublishesOnce", func(t *testing.T) {
		rows, err := repo.MarkPublished(ctx, post.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		got, err := repo.GetPost(ctx, post.ID)
		assert.NoError(t, err)
		assert.True(t, got.IsPublished)
	})

	t.Run("SecondCallIsNoop", func(t *testing.T) {
		rows, err := repo.MarkPublished(ctx, post.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("MissingPostIsNoop", func(t *testing.T) {
		rows, err := repo.MarkPublished(ctx, 99999)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

func TestPostRepo_GetDuePostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice@example.com")

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	due := &model.Post{UserID: user.ID, Content: "due", ScheduledAt: &past, IsPublished: false}
	notYet := &model.Post{UserID: user.ID, Content: "not yet", ScheduledAt: &future, IsPublished: false}
	alreadyPublished := &model.Post{UserID: user.ID, Content: "live", ScheduledAt: &past, IsPublished: true}
	immediate := &model.Post{UserID: user.ID, Content: "immediate", IsPublished: true}

	for _, p := range []*model.Post{due, notYet, alreadyPublished, immediate} {
		assert.NoError(t, repo.CreatePost(ctx, p, nil))
	}

	ids, err := repo.GetDuePostIDs(ctx, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, []uint64{due.ID}, ids)
}

func TestPostRepo_FeedAndCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	actionRepo := NewPostActionRepo(db)
	commentRepo := NewCommentRepo(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	carol := createTestUser(t, db, "carol@example.com")

	assert.NoError(t, db.Create(&model.UserFollow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: time.Now()}).Error)

	alicePost := &model.Post{UserID: alice.ID, Content: "mine", IsPublished: true}
	bobPost := &model.Post{UserID: bob.ID, Content: "followed", IsPublished: true}
	carolPost := &model.Post{UserID: carol.ID, Content: "stranger", IsPublished: true}
	for _, p := range []*model.Post{alicePost, bobPost, carolPost} {
		assert.NoError(t, repo.CreatePost(ctx, p, nil))
	}

	assert.NoError(t, actionRepo.CreateLike(ctx, &model.Like{UserID: alice.ID, PostID: bobPost.ID, CreatedAt: time.Now()}))
	assert.NoError(t, commentRepo.CreateComment(ctx, &model.Comment{PostID: bobPost.ID, UserID: alice.ID, Content: "hi"}))

	rows, err := repo.GetFeedPosts(ctx, alice.ID, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	byContent := make(map[string]*PostWithCounts, len(rows))
	for _, row := range rows {
		byContent[row.Content] = row
	}
	assert.Contains(t, byContent, "mine")
	assert.Contains(t, byContent, "followed")
	assert.NotContains(t, byContent, "stranger")

	assert.Equal(t, int64(1), byContent["followed"].LikeCount)
	assert.Equal(t, int64(1), byContent["followed"].CommentCount)
	assert.Equal(t, int64(0), byContent["mine"].LikeCount)
}

func TestPostRepo_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	hashtagRepo := NewHashtagRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice@example.com")

	tags, err := hashtagRepo.GetOrCreateHashtags(ctx, []string{"golang"})
	assert.NoError(t, err)
	assert.Len(t, tags, 1)

	post := &model.Post{UserID: user.ID, Content: "tagged #golang", IsPublished: true}
	links := []*model.PostHashtag{{HashtagID: tags[0].ID}}
	assert.NoError(t, repo.CreatePost(ctx, post, links))

	assert.NoError(t, db.Create(&model.Like{UserID: user.ID, PostID: post.ID, CreatedAt: time.Now()}).Error)
	assert.NoError(t, db.Create(&model.Comment{PostID: post.ID, UserID: user.ID, Content: "c"}).Error)

	assert.NoError(t, repo.DeletePost(ctx, post.ID))

	var likeCount, commentCount, linkCount int64
	db.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
	db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)
	db.Model(&model.PostHashtag{}).Where("post_id = ?", post.ID).Count(&linkCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, linkCount)

	// 话题词典本身保留
	names, err := repo.GetHashtagNamesByPostID(ctx, post.ID)
	assert.NoError(t, err)
	assert.Empty(t, names)
}
