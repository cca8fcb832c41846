package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// BuildImageObjectName 生成按用户隔离的对象存储路径
// uploads/users/{userID}/{folder}/{uuid}{ext}
func BuildImageObjectName(userID uint64, folder, filename string) string {
	ext := path.Ext(filename)
	return path.Join(
		"uploads", "users", strconv.FormatUint(userID, 10), folder,
		uuid.NewString()+ext,
	)
}

// GetSafeContentType 通过文件头嗅探真实的 Content-Type
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// ResizeImage 等比缩放图片到 maxSize 边界内，返回编码后的缓冲区
func ResizeImage(reader io.Reader, maxSize int, filename string) (*bytes.Buffer, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxSize || bounds.Dy() > maxSize {
		img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		format = imaging.JPEG
	}

	buf := &bytes.Buffer{}
	if err = imaging.Encode(buf, img, format); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf, nil
}
