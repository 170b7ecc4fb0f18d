package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/listings"
	"github.com/salone-startups/api-go/types"
)

type ReviewController struct {
	App *listings.App
}

func NewReviewController(app *listings.App) *ReviewController {
	return &ReviewController{App: app}
}

// SubmitReview godoc
// @Summary Add a review to a startup
// @Description The review date is set by the server
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Startup ID"
// @Param review body types.ReviewRequest true "Review"
// @Success 201 {object} StandardResponse
// @Router /startups/{id}/reviews [post]
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := rc.App.SubmitReview(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to submit review")
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    review,
		Message: "Review submitted successfully",
	})
}
