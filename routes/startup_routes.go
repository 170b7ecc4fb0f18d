package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/controllers"
)

func SetupStartupRoutes(public *gin.RouterGroup, startupController *controllers.StartupController, reviewController *controllers.ReviewController) {
	startups := public.Group("/startups")
	{
		startups.GET("", startupController.ListStartups)
		startups.GET("/featured", startupController.GetFeaturedStartups)
		startups.GET("/:id", startupController.GetStartup)
		startups.POST("/:id/reviews", reviewController.SubmitReview)
	}

	public.GET("/categories", startupController.GetCategories)
}
