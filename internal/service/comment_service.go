package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/minio"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
)

const DefaultCommentPageSize = 50

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, userID, commentID uint64, updateDTO *dto.CommentUpdateDTO) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetCommentsByPostID(ctx context.Context, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	GetPostCommentCount(ctx context.Context, postID uint64) (int64, error)
}

type CommentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	userRepo    repository.UserRepo
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID, postID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:    postID,
		UserID:    userID,
		Content:   createDTO.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateCommentCount(ctx, postID)

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		comment.User = *user
	}
	return convertToCommentDTO(comment), nil
}

func (s *CommentServiceImpl) UpdateComment(ctx context.Context, userID, commentID uint64, updateDTO *dto.CommentUpdateDTO) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if err := requireOwner(comment, userID); err != nil {
		return err
	}

	comment.Content = updateDTO.Content
	comment.UpdatedAt = time.Now()
	return s.commentRepo.UpdateComment(ctx, comment)
}

func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if err := requireOwner(comment, userID); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.invalidateCommentCount(ctx, comment.PostID)
	return nil
}

func (s *CommentServiceImpl) GetCommentsByPostID(ctx context.Context, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		res = append(res, convertToCommentDTO(comment))
	}
	return res, nil
}

func (s *CommentServiceImpl) GetPostCommentCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostCommentCountKey + strconv.FormatUint(postID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.commentRepo.GetCommentCountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *CommentServiceImpl) invalidateCommentCount(ctx context.Context, postID uint64) {
	_ = redis.DeleteKey(ctx, consts.PostCommentCountKey+strconv.FormatUint(postID, 10))
}

func convertToCommentDTO(comment *model.Comment) *dto.CommentDTO {
	item := &dto.CommentDTO{}
	_ = copier.Copy(item, comment)
	item.CreatedAt = comment.CreatedAt.Format("2006-01-02 15:04:05")
	if comment.User.ID != 0 {
		item.Username = comment.User.Username
		item.AvatarURL = minio.GetPublicURL(comment.User.Profile.AvatarURL)
	}
	return item
}
