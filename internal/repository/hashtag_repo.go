package repository

import (
	"Ripple/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepo interface {
	GetOrCreateHashtags(ctx context.Context, names []string) ([]*model.Hashtag, error)
}

type hashtagRepoImpl struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepo {
	return &hashtagRepoImpl{
		db: db,
	}
}

// GetOrCreateHashtags 惰性创建话题标签，使用 OnConflict DoNothing 避免重复创建
func (s *hashtagRepoImpl) GetOrCreateHashtags(ctx context.Context, names []string) ([]*model.Hashtag, error) {
	if len(names) == 0 {
		return []*model.Hashtag{}, nil
	}

	for _, name := range names {
		tag := model.Hashtag{
			Name:      name,
			CreatedAt: time.Now(),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
		if err != nil {
			return nil, err
		}
	}

	var tags []*model.Hashtag
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}
