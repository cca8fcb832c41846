package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var createDTO dto.PostCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	postDTO, err := s.postSvc.CreatePost(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updateDTO dto.PostUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	err = s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.postSvc.DeletePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetFeed 个人时间线：本人与关注者的帖子
func (s *PostHandler) GetFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := getPageParams(c)

	feed, err := s.postSvc.GetFeed(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

// GetGlobalFeed 全站时间线，支持 hashtag 查询参数过滤
func (s *PostHandler) GetGlobalFeed(c *gin.Context) {
	page, pageSize := getPageParams(c)
	hashtag := c.Query("hashtag")

	feed, err := s.postSvc.GetGlobalFeed(c.Request.Context(), hashtag, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	detail, err := s.postSvc.GetPostDetail(c.Request.Context(), viewerID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}
