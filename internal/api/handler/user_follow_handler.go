package handler

import (
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowSvc: userFollowSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	followingID, ok := parsePathID(c, "following_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.userFollowSvc.FollowUser(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	followingID, ok := parsePathID(c, "following_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.userFollowSvc.UnfollowUser(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) GetUserFollowers(c *gin.Context) {
	userID, ok := parsePathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPageParams(c)

	followers, err := s.userFollowSvc.GetUserFollowers(c.Request.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

func (s *UserFollowHandler) GetUserFollowings(c *gin.Context) {
	userID, ok := parsePathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPageParams(c)

	followings, err := s.userFollowSvc.GetUserFollowing(c.Request.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followings)
}

func (s *UserFollowHandler) GetUserFollowersCount(c *gin.Context) {
	userID, ok := parsePathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	count, err := s.userFollowSvc.GetUserFollowerCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

func (s *UserFollowHandler) GetUserFollowingCount(c *gin.Context) {
	userID, ok := parsePathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	count, err := s.userFollowSvc.GetUserFollowingCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

func (s *UserFollowHandler) GetSomeoneIsFollowing(c *gin.Context) {
	userID := c.GetUint64("user_id")
	followingID, ok := parsePathID(c, "following_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	isFollowing, err := s.userFollowSvc.IsFollowing(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]bool{"is_following": isFollowing})
}
