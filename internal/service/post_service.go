package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/minio"
	"Ripple/internal/pkg/util"
	"Ripple/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, createDTO *dto.PostCreateDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID, postID uint64, updateDTO *dto.PostUpdateDTO) error
	DeletePost(ctx context.Context, userID, postID uint64) error
	GetFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostListDTO, error)
	GetGlobalFeed(ctx context.Context, hashtag string, page, pageSize int) (*dto.PostListDTO, error)
	GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDetailDTO, error)
}

type PostServiceImpl struct {
	postRepo    repository.PostRepo
	hashtagRepo repository.HashtagRepo
	userRepo    repository.UserRepo
	commentRepo repository.CommentRepo
}

func NewPostService(
	postRepo repository.PostRepo,
	hashtagRepo repository.HashtagRepo,
	userRepo repository.UserRepo,
	commentRepo repository.CommentRepo,
) PostService {
	return &PostServiceImpl{
		postRepo:    postRepo,
		hashtagRepo: hashtagRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost 创建帖子，定时发布时间在未来时先落库为未发布状态
func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, createDTO *dto.PostCreateDTO) (*dto.PostDTO, error) {
	now := time.Now()
	isPublished := createDTO.ScheduledAt == nil || !createDTO.ScheduledAt.After(now)

	post := &model.Post{}
	if err := copier.Copy(post, createDTO); err != nil {
		return nil, err
	}
	post.UserID = userID
	post.IsPublished = isPublished
	post.CreatedAt = now
	post.UpdatedAt = now

	links, err := s.buildHashtagLinks(ctx, createDTO.Content, 0)
	if err != nil {
		return nil, err
	}

	err = s.postRepo.CreatePost(ctx, post, links)
	if err != nil {
		return nil, err
	}

	return s.loadPostDTO(ctx, post.ID)
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, updateDTO *dto.PostUpdateDTO) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err := requireOwner(post, userID); err != nil {
		return err
	}

	post.Content = updateDTO.Content
	if updateDTO.ImageURL != nil {
		post.ImageURL = updateDTO.ImageURL
	}
	post.UpdatedAt = time.Now()

	links, err := s.buildHashtagLinks(ctx, updateDTO.Content, postID)
	if err != nil {
		return err
	}

	return s.postRepo.UpdatePost(ctx, post, links)
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err := requireOwner(post, userID); err != nil {
		return err
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	if post.ImageURL != nil {
		go func(objectName string) {
			_ = minio.DeleteFile(context.Background(), objectName)
			log.Info("post image cleaned up", "postID", postID)
		}(*post.ImageURL)
	}
	return nil
}

// GetFeed 个人时间线，未登录用户得到空列表
func (s *PostServiceImpl) GetFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostListDTO, error) {
	if userID == 0 {
		return &dto.PostListDTO{List: []*dto.PostDTO{}, HasMore: false}, nil
	}

	rows, err := s.postRepo.GetFeedPosts(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.expandPostList(ctx, rows, pageSize)
}

func (s *PostServiceImpl) GetGlobalFeed(ctx context.Context, hashtag string, page, pageSize int) (*dto.PostListDTO, error) {
	rows, err := s.postRepo.GetAllPosts(ctx, hashtag, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.expandPostList(ctx, rows, pageSize)
}

// GetPostDetail 未发布的帖子只有作者本人可见
func (s *PostServiceImpl) GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDetailDTO, error) {
	row, err := s.postRepo.GetPostWithCounts(ctx, postID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrPostNotFound
	}
	if !row.IsPublished && row.UserID != viewerID {
		return nil, ErrPostNotFound
	}

	postDTO, err := s.convertToPostDTO(ctx, row)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, DefaultCommentPageSize, 0)
	if err != nil {
		return nil, err
	}
	commentDTOs := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTOs = append(commentDTOs, convertToCommentDTO(comment))
	}

	return &dto.PostDetailDTO{
		Post:     postDTO,
		Comments: commentDTOs,
	}, nil
}

// buildHashtagLinks 从正文解析话题标签并生成关联记录
func (s *PostServiceImpl) buildHashtagLinks(ctx context.Context, content string, postID uint64) ([]*model.PostHashtag, error) {
	names := util.ExtractHashtags(content)
	tags, err := s.hashtagRepo.GetOrCreateHashtags(ctx, names)
	if err != nil {
		return nil, err
	}

	links := make([]*model.PostHashtag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, &model.PostHashtag{
			PostID:    postID,
			HashtagID: tag.ID,
		})
	}
	return links, nil
}

func (s *PostServiceImpl) expandPostList(ctx context.Context, rows []*repository.PostWithCounts, pageSize int) (*dto.PostListDTO, error) {
	hasMore := len(rows) > pageSize
	if hasMore {
		rows = rows[:pageSize]
	}

	userIDs := make([]uint64, 0, len(rows))
	seen := make(map[uint64]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.UserID]; ok {
			continue
		}
		seen[row.UserID] = struct{}{}
		userIDs = append(userIDs, row.UserID)
	}

	userMap := make(map[uint64]*model.User, len(userIDs))
	if len(userIDs) > 0 {
		users, err := s.userRepo.GetUserByIds(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			userMap[user.ID] = user
		}
	}

	list := make([]*dto.PostDTO, 0, len(rows))
	for _, row := range rows {
		item, err := s.buildPostDTO(ctx, row, userMap[row.UserID])
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return &dto.PostListDTO{List: list, HasMore: hasMore}, nil
}

func (s *PostServiceImpl) loadPostDTO(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	row, err := s.postRepo.GetPostWithCounts(ctx, postID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrPostNotFound
	}
	return s.convertToPostDTO(ctx, row)
}

func (s *PostServiceImpl) convertToPostDTO(ctx context.Context, row *repository.PostWithCounts) (*dto.PostDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, row.UserID)
	if err != nil {
		return nil, err
	}
	return s.buildPostDTO(ctx, row, user)
}

func (s *PostServiceImpl) buildPostDTO(ctx context.Context, row *repository.PostWithCounts, user *model.User) (*dto.PostDTO, error) {
	hashtags, err := s.postRepo.GetHashtagNamesByPostID(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	item := &dto.PostDTO{
		ID:           row.ID,
		Content:      row.Content,
		Hashtags:     hashtags,
		IsPublished:  row.IsPublished,
		LikeCount:    row.LikeCount,
		CommentCount: row.CommentCount,
		UserID:       row.UserID,
		CreatedAt:    row.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    row.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if row.ImageURL != nil {
		url := minio.GetPublicURL(*row.ImageURL)
		item.ImageURL = &url
	}
	if row.ScheduledAt != nil {
		scheduledAt := row.ScheduledAt.Format("2006-01-02 15:04:05")
		item.ScheduledAt = &scheduledAt
	}
	if user != nil {
		item.Username = user.Username
		item.AvatarURL = minio.GetPublicURL(user.Profile.AvatarURL)
	}
	return item, nil
}
