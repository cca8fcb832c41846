package repository

import (
	"Ripple/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostWithCounts 帖子及其聚合计数，计数始终由关联表实时统计
type PostWithCounts struct {
	model.Post `gorm:"embedded"`

	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
}

const postCountsSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, links []*model.PostHashtag) error
	UpdatePost(ctx context.Context, post *model.Post, links []*model.PostHashtag) error
	DeletePost(ctx context.Context, id uint64) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostWithCounts(ctx context.Context, id uint64) (*PostWithCounts, error)
	GetFeedPosts(ctx context.Context, userID uint64, limit, offset int) ([]*PostWithCounts, error)
	GetAllPosts(ctx context.Context, hashtag string, limit, offset int) ([]*PostWithCounts, error)
	GetHashtagNamesByPostID(ctx context.Context, postID uint64) ([]string, error)
	GetDuePostIDs(ctx context.Context, due time.Time) ([]uint64, error)
	MarkPublished(ctx context.Context, id uint64) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, links []*model.PostHashtag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, link := range links {
			link.PostID = post.ID
		}
		if len(links) > 0 {
			if err := tx.Create(links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePost 更新帖子并用新的话题关联整体替换旧关联
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post, links []*model.PostHashtag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostHashtag{}, "post_id = ?", post.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(post).
			Select("content", "image_url", "updated_at").
			Updates(post).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostHashtag{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Like{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostWithCounts(ctx context.Context, id uint64) (*PostWithCounts, error) {
	var row PostWithCounts
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Select(postCountsSelect).
		Where("posts.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetFeedPosts 个人时间线：本人或关注者发布的帖子，新的在前
func (s *PostRepoImpl) GetFeedPosts(ctx context.Context, userID uint64, limit, offset int) ([]*PostWithCounts, error) {
	var rows []*PostWithCounts
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Select(postCountsSelect).
		Where("posts.is_published = ?", true).
		Where("posts.user_id = ? OR posts.user_id IN (?)",
			userID,
			s.db.Model(&model.UserFollow{}).Select("following_id").Where("follower_id = ?", userID),
		).
		Order("posts.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetAllPosts 全站时间线，可按话题过滤
func (s *PostRepoImpl) GetAllPosts(ctx context.Context, hashtag string, limit, offset int) ([]*PostWithCounts, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Select(postCountsSelect).
		Where("posts.is_published = ?", true)

	if hashtag != "" {
		query = query.
			Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
			Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
			Where("hashtags.name = ?", hashtag)
	}

	var rows []*PostWithCounts
	err := query.
		Order("posts.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostRepoImpl) GetHashtagNamesByPostID(ctx context.Context, postID uint64) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&model.Hashtag{}).
		Joins("JOIN post_hashtags ON post_hashtags.hashtag_id = hashtags.id").
		Where("post_hashtags.post_id = ?", postID).
		Order("hashtags.name").
		Pluck("hashtags.name", &names).Error
	return names, err
}

// GetDuePostIDs 查询已到定时发布时间但仍未发布的帖子
func (s *PostRepoImpl) GetDuePostIDs(ctx context.Context, due time.Time) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("is_published = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", false, due).
		Pluck("id", &ids).Error
	return ids, err
}

// MarkPublished 幂等地将帖子置为已发布，返回实际更新的行数
// 帖子不存在或已发布时不产生写入
func (s *PostRepoImpl) MarkPublished(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND is_published = ?", id, false).
		Update("is_published", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
