package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/minio"
	"Ripple/internal/pkg/response"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// 头像统一压到 512 以内
const avatarMaxSize = 512

type MediaHandler struct {
	userSvc service.UserService
}

func NewMediaHandler(userSvc service.UserService) *MediaHandler {
	return &MediaHandler{userSvc: userSvc}
}

// UploadAvatar 上传头像并写回用户 Profile
func (s *MediaHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	buf, err := util.ResizeImage(reader, avatarMaxSize, file.Filename)
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := util.BuildImageObjectName(userID, consts.AvatarFolder, file.Filename)
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, buf, int64(buf.Len()), contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	if err = s.userSvc.UpdateAvatar(c.Request.Context(), userID, fileKey); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.MediaUploadDTO{
		ObjectName: fileKey,
		PublicURL:  minio.GetPublicURL(fileKey),
	})
}

// UploadPostImage 上传帖子配图，返回对象名，由创建帖子接口引用
func (s *MediaHandler) UploadPostImage(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := util.BuildImageObjectName(userID, consts.PostImageFolder, file.Filename)
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	log.InfoContext(c.Request.Context(), "post image uploaded", "fileKey", fileKey)
	response.Success(c, dto.MediaUploadDTO{
		ObjectName: fileKey,
		PublicURL:  minio.GetPublicURL(fileKey),
	})
}
