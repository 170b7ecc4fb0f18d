package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/controllers"
)

func SetupUploadRoutes(admin *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := admin.Group("/uploads")
	{
		// Server-side upload from the admin form
		uploads.POST("/image", uploadController.UploadImage)

		// Direct browser upload
		uploads.POST("/presigned-url", uploadController.GetPresignedURL)
		uploads.POST("/confirm", uploadController.ConfirmUpload)

		// Keys contain a slash, so match the rest of the path
		uploads.DELETE("/file/*key", uploadController.DeleteFile)
	}
}
