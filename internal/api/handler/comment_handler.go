package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var createDTO dto.CommentCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	commentDTO, err := s.commentSvc.CreateComment(c.Request.Context(), userID, postID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, commentDTO)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, ok := parsePathID(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updateDTO dto.CommentUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	err = s.commentSvc.UpdateComment(c.Request.Context(), userID, commentID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, ok := parsePathID(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.commentSvc.DeleteComment(c.Request.Context(), userID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPageParams(c)

	comments, err := s.commentSvc.GetCommentsByPostID(c.Request.Context(), postID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) GetCommentCount(c *gin.Context) {
	postID, ok := parsePathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.commentSvc.GetPostCommentCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}
