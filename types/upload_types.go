package types

import (
	"time"
)

const (
	MAX_IMAGE_SIZE = 5 * 1024 * 1024 // 5MB
	PRESIGN_EXPIRY = time.Hour
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type UploadConfirmRequest struct {
	Key string `json:"key" binding:"required"`
}

type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func IsValidImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

func IsValidImageSize(size int64) bool {
	return size > 0 && size <= MAX_IMAGE_SIZE
}

// ImageExtension is the file extension for contentType, used when the
// uploaded file name has none.
func ImageExtension(contentType string) string {
	return allowedImageTypes[contentType]
}
