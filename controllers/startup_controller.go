package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/listings"
	"github.com/salone-startups/api-go/types"
)

const DefaultVisibleCount = 9

type StartupController struct {
	App          *listings.App
	VisibleCount int
}

func NewStartupController(app *listings.App, visibleCount int) *StartupController {
	if visibleCount <= 0 {
		visibleCount = DefaultVisibleCount
	}
	return &StartupController{App: app, VisibleCount: visibleCount}
}

// ListStartups godoc
// @Summary List startups matching the URL filters
// @Description Filters by free text, category slugs and minimum rating, then
// @Description reveals the first `visible` matches
// @Tags startups
// @Produce json
// @Param q query string false "Free-text search"
// @Param categories query string false "Comma-separated category slugs"
// @Param category query string false "Single category slug, wins over categories"
// @Param minRating query number false "Minimum rating"
// @Param visible query integer false "Number of matches to return"
// @Success 200 {object} StandardResponse
// @Router /startups [get]
func (sc *StartupController) ListStartups(c *gin.Context) {
	var query types.StartupListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sc.App.Browse(c.Request.Context(), c.Request.URL.Query(), query.Query)
	if err != nil {
		respondError(c, err, "Error fetching startups")
		return
	}

	visible := sc.VisibleCount
	if query.Visible > 0 {
		visible = query.Visible
	}
	shown := min(visible, result.Total)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    result.Startups[:shown],
		Meta: types.RevealMeta{
			Total:   result.Total,
			Visible: shown,
			HasMore: result.Total > shown,
			Filters: result.Filters,
			Params:  result.Params.Encode(),
		},
	})
}

// GetFeaturedStartups godoc
// @Summary Get featured startups
// @Tags startups
// @Produce json
// @Param limit query integer false "Maximum number of startups"
// @Success 200 {object} StandardResponse
// @Router /startups/featured [get]
func (sc *StartupController) GetFeaturedStartups(c *gin.Context) {
	var query types.FeaturedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startups, err := sc.App.Featured(c.Request.Context(), query.Limit)
	if err != nil {
		respondError(c, err, "Error fetching featured startups")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    startups,
	})
}

// GetStartup godoc
// @Summary Get one startup with its reviews
// @Tags startups
// @Produce json
// @Param id path string true "Startup ID"
// @Success 200 {object} StandardResponse
// @Router /startups/{id} [get]
func (sc *StartupController) GetStartup(c *gin.Context) {
	startup, err := sc.App.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error fetching startup")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    startup,
	})
}

// GetCategories godoc
// @Summary Count startups per category
// @Tags startups
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /categories [get]
func (sc *StartupController) GetCategories(c *gin.Context) {
	summaries, err := sc.App.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching categories")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    summaries,
		Meta:    gin.H{"known": sc.App.Catalog().Categories()},
	})
}
