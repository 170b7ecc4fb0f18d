package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/controllers"
)

func SetupAdminRoutes(admin *gin.RouterGroup, adminController *controllers.AdminController) {
	startups := admin.Group("/startups")
	{
		startups.POST("", adminController.CreateStartup)
		startups.POST("/import", adminController.ImportStartups)
		startups.PUT("/:id", adminController.UpdateStartup)
		startups.PATCH("/:id", adminController.PatchStartup)
		startups.DELETE("/:id", adminController.DeleteStartup)
	}
}
