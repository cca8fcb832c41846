package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/repository"
	"context"
	"strconv"
	"time"
)

const countCacheExpiration = time.Hour * 1

type UserFollowService interface {
	FollowUser(ctx context.Context, followerID, followingID uint64) error
	UnfollowUser(ctx context.Context, followerID, followingID uint64) error
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error)
	GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
}

type UserFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	userRepo       repository.UserRepo
}

func NewUserFollowService(userFollowRepo repository.UserFollowRepo, userRepo repository.UserRepo) UserFollowService {
	return &UserFollowServiceImpl{
		userFollowRepo: userFollowRepo,
		userRepo:       userRepo,
	}
}

type fetchCountFunc func(ctx context.Context, userID uint64) (int64, error)

func (s *UserFollowServiceImpl) FollowUser(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, followingID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	existing, err := s.userFollowRepo.GetUserFollow(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrFollowExist
	}

	userFollow := &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}
	err = s.userFollowRepo.CreateUserFollow(ctx, userFollow)
	if err != nil {
		if isDuplicateError(err) {
			return ErrFollowExist
		}
		return err
	}

	s.invalidateCounts(ctx, followerID, followingID)
	return nil
}

func (s *UserFollowServiceImpl) UnfollowUser(ctx context.Context, followerID, followingID uint64) error {
	rows, err := s.userFollowRepo.DeleteUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFollowNotFound
	}

	s.invalidateCounts(ctx, followerID, followingID)
	return nil
}

func (s *UserFollowServiceImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error) {
	userFollows, err := s.userFollowRepo.GetUserFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(userFollows))
	for _, uf := range userFollows {
		ids = append(ids, uf.FollowerID)
	}
	return s.resolveUsers(ctx, ids)
}

func (s *UserFollowServiceImpl) GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error) {
	userFollows, err := s.userFollowRepo.GetUserFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(userFollows))
	for _, uf := range userFollows {
		ids = append(ids, uf.FollowingID)
	}
	return s.resolveUsers(ctx, ids)
}

func (s *UserFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(
		ctx, userID,
		consts.UserFollowerCountKey,
		s.userFollowRepo.GetUserFollowerCount,
	)
}

func (s *UserFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(
		ctx, userID,
		consts.UserFollowingCountKey,
		s.userFollowRepo.GetUserFollowingCount,
	)
}

func (s *UserFollowServiceImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	userFollow, err := s.userFollowRepo.GetUserFollow(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	return userFollow != nil, nil
}

// resolveUsers 批量加载用户信息，保持入参 id 的顺序
func (s *UserFollowServiceImpl) resolveUsers(ctx context.Context, ids []uint64) ([]*dto.UserDTO, error) {
	if len(ids) == 0 {
		return []*dto.UserDTO{}, nil
	}

	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	userMap := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}

	res := make([]*dto.UserDTO, 0, len(ids))
	for _, id := range ids {
		user, ok := userMap[id]
		if !ok {
			continue
		}
		res = append(res, convertToUserDTO(user))
	}
	return res, nil
}

func (s *UserFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userID uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)

	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}

	count, err = fetchDB(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(ctx, key, count, countCacheExpiration)
	return count, nil
}

func (s *UserFollowServiceImpl) invalidateCounts(ctx context.Context, followerID, followingID uint64) {
	_ = redis.DeleteKey(ctx, consts.UserFollowingCountKey+strconv.FormatUint(followerID, 10))
	_ = redis.DeleteKey(ctx, consts.UserFollowerCountKey+strconv.FormatUint(followingID, 10))
}
