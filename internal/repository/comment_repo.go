package repository

import (
	"Ripple/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) UpdateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Model(comment).
		Select("content", "updated_at").
		Updates(comment).Error
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	result := s.db.WithContext(ctx).First(&comment, commentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &comment, nil
}

// GetCommentsByPostID 评论按创建时间升序排列
func (s *CommentRepoImpl) GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	result := s.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (s *CommentRepoImpl) GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
