package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/listings"
	"github.com/salone-startups/api-go/types"
	"github.com/salone-startups/api-go/utils"
)

type AdminController struct {
	App *listings.App
}

func NewAdminController(app *listings.App) *AdminController {
	return &AdminController{App: app}
}

// CreateStartup godoc
// @Summary Create a startup listing
// @Tags admin
// @Accept json
// @Produce json
// @Param startup body types.StartupRequest true "Startup"
// @Success 201 {object} StandardResponse
// @Router /admin/startups [post]
func (ac *AdminController) CreateStartup(c *gin.Context) {
	var req types.StartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startup, err := ac.App.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to create startup")
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    startup,
		Message: "Startup created successfully",
	})
}

// UpdateStartup godoc
// @Summary Replace the editable fields of a startup
// @Description Reviews are kept
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Startup ID"
// @Param startup body types.StartupRequest true "Startup"
// @Success 200 {object} StandardResponse
// @Router /admin/startups/{id} [put]
func (ac *AdminController) UpdateStartup(c *gin.Context) {
	var req types.StartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startup, err := ac.App.Replace(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to update startup")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    startup,
		Message: "Startup updated successfully",
	})
}

// PatchStartup godoc
// @Summary Update some fields of a startup
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Startup ID"
// @Success 200 {object} StandardResponse
// @Router /admin/startups/{id} [patch]
func (ac *AdminController) PatchStartup(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if raw, ok := patch["services"].(string); ok {
		patch["services"] = utils.SplitList(raw, ",")
	}

	startup, err := ac.App.Patch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Failed to update startup")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    startup,
		Message: "Startup updated successfully",
	})
}

// DeleteStartup godoc
// @Summary Delete a startup
// @Tags admin
// @Param id path string true "Startup ID"
// @Success 200 {object} StandardResponse
// @Router /admin/startups/{id} [delete]
func (ac *AdminController) DeleteStartup(c *gin.Context) {
	if err := ac.App.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete startup")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Startup deleted successfully",
	})
}

// ImportStartups godoc
// @Summary Bulk load startup documents
// @Description Records with an id are written at that id
// @Tags admin
// @Accept json
// @Produce json
// @Param body body types.ImportRequest true "Startups"
// @Success 200 {object} StandardResponse
// @Router /admin/startups/import [post]
func (ac *AdminController) ImportStartups(c *gin.Context) {
	var req types.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.App.Import(c.Request.Context(), req.Startups)
	if err != nil {
		respondError(c, err, "Failed to import startups")
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    result,
		Message: "Import finished",
	})
}
