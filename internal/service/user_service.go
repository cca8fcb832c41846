package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/minio"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/pkg/security"
	"Ripple/internal/repository"
	"context"
	"time"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.ProfileUpdateDTO) error
	UpdateAvatar(ctx context.Context, id uint64, objectName string) error
}

type UserServiceImpl struct {
	userRepo      repository.UserRepo
	followService UserFollowService
}

func NewUserService(userRepo repository.UserRepo, followService UserFollowService) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		followService: followService,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	if regDTO.Password != regDTO.Password2 {
		return ErrPasswordMismatch
	}

	findUser, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:    regDTO.Email,
		Username: regDTO.Username,
		Password: passwordHash,
	}
	profile := &model.Profile{
		AvatarURL: consts.DefaultAvatarURL,
	}

	err = s.userRepo.CreateUser(ctx, user, profile)
	if err != nil {
		if isDuplicateError(err) {
			return ErrEmailExist
		}
		return err
	}
	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, credDTO.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrPasswordIncorrect
	}

	err = security.CheckPasswordHash(credDTO.Password, user.Password)
	if err != nil {
		return "", ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout 将令牌签名加入拒绝名单，有效期与令牌剩余有效期一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrTokenInvalid
	}

	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	return redis.SetWithExpiration(ctx, consts.TokenDenyKey+signature, true, remaining)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	followerCount, err := s.followService.GetUserFollowerCount(ctx, id)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followService.GetUserFollowingCount(ctx, id)
	if err != nil {
		return nil, err
	}

	userDTO := convertToUserDTO(user)
	userDTO.Email = user.Email
	userDTO.FollowerCount = followerCount
	userDTO.FollowingCount = followingCount
	return userDTO, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.ProfileUpdateDTO) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if profileDTO.Username != nil {
		user.Username = *profileDTO.Username
		user.UpdatedAt = time.Now()
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return err
		}
	}

	if profileDTO.Bio != nil {
		profile := &model.Profile{
			UserID:    id,
			Bio:       profileDTO.Bio,
			UpdatedAt: time.Now(),
		}
		if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, id uint64, objectName string) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	profile := &model.Profile{
		UserID:    id,
		AvatarURL: objectName,
		UpdatedAt: time.Now(),
	}
	return s.userRepo.UpdateProfile(ctx, profile)
}

func convertToUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		UserID:    user.ID,
		Username:  user.Username,
		Bio:       user.Profile.Bio,
		AvatarURL: minio.GetPublicURL(user.Profile.AvatarURL),
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
