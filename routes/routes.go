package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/salone-startups/api-go/controllers"
	"github.com/salone-startups/api-go/listings"
	"github.com/salone-startups/api-go/objectstore"
	"gorm.io/gorm"
)

// Deps are the services the HTTP layer is built from.
type Deps struct {
	DB           *gorm.DB
	App          *listings.App
	Objects      objectstore.Store
	Clock        clockwork.Clock
	VisibleCount int
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	// Initialize controllers
	healthController := controllers.NewHealthController(deps.DB)
	startupController := controllers.NewStartupController(deps.App, deps.VisibleCount)
	reviewController := controllers.NewReviewController(deps.App)
	adminController := controllers.NewAdminController(deps.App)
	uploadController := controllers.NewUploadController(deps.Objects, deps.Clock)

	r.GET("/health", healthController.Health)

	// Public routes
	public := r.Group("/api")
	SetupStartupRoutes(public, startupController, reviewController)

	// Admin routes
	admin := public.Group("/admin")
	SetupAdminRoutes(admin, adminController)
	SetupUploadRoutes(admin, uploadController)
}
