package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats
// @Summary Dashboard counters
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.DashboardStats}
// @Router /dashboard [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// Search
// @Summary Search courses and students
// @Description Case-insensitive match on codes and names of active records. A blank term returns nothing.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=services.SearchResult}
// @Router /search [get]
func (c *DashboardController) Search(ctx *gin.Context) {
	result, err := c.dashboardService.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
