package handler

import (
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{actionSvc: actionSvc}
}

func (s *PostActionHandler) LikePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.actionSvc.LikePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) UnlikePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.actionSvc.CancelLikePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) GetLikeCount(c *gin.Context) {
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.actionSvc.GetPostLikeCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

// GetPostActionState 当前用户对帖子的点赞状态
func (s *PostActionHandler) GetPostActionState(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	isLiked, err := s.actionSvc.IsLiked(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]bool{"is_liked": isLiked})
}
