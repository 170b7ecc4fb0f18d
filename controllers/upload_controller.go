package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/salone-startups/api-go/objectstore"
	"github.com/salone-startups/api-go/types"
)

type UploadController struct {
	Store objectstore.Store
	Clock clockwork.Clock
}

// NewUploadController creates an UploadController. A nil store disables
// uploads; every handler then answers 503.
func NewUploadController(store objectstore.Store, clock clockwork.Clock) *UploadController {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &UploadController{Store: store, Clock: clock}
}

// UploadImage godoc
// @Summary Upload a startup image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} StandardResponse
// @Router /admin/uploads/image [post]
func (uc *UploadController) UploadImage(c *gin.Context) {
	if !uc.available(c) {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !types.IsValidImageType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}
	if !types.IsValidImageSize(header.Size) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image size exceeds limit"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	key := uc.imageKey(header.Filename, contentType)
	url, err := uc.Store.Upload(c.Request.Context(), key, contentType, file, header.Size)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data: types.UploadResponse{
			URL:         url,
			Key:         key,
			Size:        header.Size,
			ContentType: contentType,
		},
		Message: "Image uploaded successfully",
	})
}

// GetPresignedURL godoc
// @Summary Get a URL the browser can upload an image to directly
// @Tags uploads
// @Accept json
// @Produce json
// @Param body body types.PresignedURLRequest true "File description"
// @Success 200 {object} StandardResponse
// @Router /admin/uploads/presigned-url [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	if !uc.available(c) {
		return
	}

	var req types.PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !types.IsValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}
	if !types.IsValidImageSize(req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image size exceeds limit"})
		return
	}

	key := uc.imageKey(req.FileName, req.ContentType)
	uploadURL, err := uc.Store.PresignUpload(c.Request.Context(), key, req.ContentType, types.PRESIGN_EXPIRY)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("presign failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: types.PresignedURLResponse{
			UploadURL: uploadURL,
			FileURL:   uc.Store.PublicURL(key),
			Key:       key,
			ExpiresIn: int(types.PRESIGN_EXPIRY.Seconds()),
		},
		Message: "Presigned URL generated successfully",
	})
}

// ConfirmUpload godoc
// @Summary Check that a presigned upload arrived
// @Tags uploads
// @Accept json
// @Produce json
// @Param body body types.UploadConfirmRequest true "Uploaded key"
// @Success 200 {object} StandardResponse
// @Router /admin/uploads/confirm [post]
func (uc *UploadController) ConfirmUpload(c *gin.Context) {
	if !uc.available(c) {
		return
	}

	var req types.UploadConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !objectstore.IsImageKey(req.Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file key"})
		return
	}

	info, err := uc.Store.Stat(c.Request.Context(), req.Key)
	if errors.Is(err, objectstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("stat failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify file upload"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: types.UploadResponse{
			URL:         uc.Store.PublicURL(req.Key),
			Key:         req.Key,
			Size:        info.Size,
			ContentType: info.ContentType,
		},
		Message: "Upload confirmed successfully",
	})
}

// DeleteFile godoc
// @Summary Delete an uploaded image
// @Tags uploads
// @Param key path string true "Object key"
// @Success 200 {object} StandardResponse
// @Router /admin/uploads/file/{key} [delete]
func (uc *UploadController) DeleteFile(c *gin.Context) {
	if !uc.available(c) {
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if !objectstore.IsImageKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file key"})
		return
	}

	if err := uc.Store.Delete(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

func (uc *UploadController) available(c *gin.Context) bool {
	if uc.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return false
	}
	return true
}

func (uc *UploadController) imageKey(fileName, contentType string) string {
	if filepath.Ext(fileName) == "" {
		fileName += types.ImageExtension(contentType)
	}
	return objectstore.ImageKey(uc.Clock.Now(), fileName)
}
