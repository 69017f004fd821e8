package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
	"github.com/yigit/sims/internal/pkg/helpers"
)

// ActivityLogController exposes the audit trail to administrators.
type ActivityLogController struct {
	activityService services.ActivityLogService
}

func NewActivityLogController(activityService services.ActivityLogService) *ActivityLogController {
	return &ActivityLogController{activityService: activityService}
}

func writeLogPage(ctx *gin.Context, logs []*models.ActivityLog, total int64, page, size int) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ActivityLogListResponse{
		Logs:       logs,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetAllLogs
// @Summary Audit trail
// @Description Every activity entry, newest first
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityLogListResponse}
// @Router /activity-logs [get]
func (c *ActivityLogController) GetAllLogs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	logs, total, err := c.activityService.GetAllLogs(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeLogPage(ctx, logs, total, page, size)
}

// GetRecentLogs
// @Summary Recent activity
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param count query int false "Number of entries (default 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.ActivityLog}
// @Router /activity-logs/recent [get]
func (c *ActivityLogController) GetRecentLogs(ctx *gin.Context) {
	count, _ := strconv.Atoi(ctx.Query("count"))
	logs, err := c.activityService.GetRecentLogs(ctx.Request.Context(), count)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(logs))
}

// GetLogsByUser
// @Summary Activity of one user
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityLogListResponse}
// @Router /activity-logs/users/{userId} [get]
func (c *ActivityLogController) GetLogsByUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	logs, total, err := c.activityService.GetLogsByUserID(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeLogPage(ctx, logs, total, page, size)
}

// GetLogsByAction
// @Summary Activity by action
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param action path string true "Action, e.g. Create"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityLogListResponse}
// @Router /activity-logs/actions/{action} [get]
func (c *ActivityLogController) GetLogsByAction(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	logs, total, err := c.activityService.GetLogsByAction(ctx.Request.Context(), ctx.Param("action"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeLogPage(ctx, logs, total, page, size)
}
