package service

import (
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const cacheExpiration = time.Hour * 1

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	CancelLikePost(ctx context.Context, userID, postID uint64) error
	GetPostLikeCount(ctx context.Context, postID uint64) (int64, error)
	IsLiked(ctx context.Context, userID, postID uint64) (bool, error)
}

type postActionServiceImpl struct {
	actionRepo repository.PostActionRepo
	postRepo   repository.PostRepo
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo: actionRepo,
		postRepo:   postRepo,
	}
}

func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.getPostCheck(ctx, postID)(); err != nil {
		return err
	}

	liked, err := s.actionRepo.CheckLikeExists(ctx, userID, postID)
	if err != nil {
		return err
	}
	if liked {
		return ErrLikeExist
	}

	err = s.actionRepo.CreateLike(ctx, &model.Like{UserID: userID, PostID: postID, CreatedAt: time.Now()})
	if err != nil {
		if isDuplicateError(err) {
			return ErrLikeExist
		}
		return err
	}

	s.invalidateLikeCount(ctx, postID)
	return nil
}

func (s *postActionServiceImpl) CancelLikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.getPostCheck(ctx, postID)(); err != nil {
		return err
	}

	rows, err := s.actionRepo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLikeNotFound
	}

	s.invalidateLikeCount(ctx, postID)
	return nil
}

func (s *postActionServiceImpl) GetPostLikeCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostLikeCountKey + strconv.FormatUint(postID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *postActionServiceImpl) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.actionRepo.CheckLikeExists(ctx, userID, postID)
}

func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64) func() error {
	return func() error {
		post, err := s.postRepo.GetPost(ctx, postID)
		if err != nil || post == nil {
			return ErrPostNotFound
		}
		return nil
	}
}

func (s *postActionServiceImpl) invalidateLikeCount(ctx context.Context, postID uint64) {
	_ = redis.DeleteKey(ctx, consts.PostLikeCountKey+strconv.FormatUint(postID, 10))
}

// isDuplicateError 将底层唯一键冲突识别为重复操作
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
