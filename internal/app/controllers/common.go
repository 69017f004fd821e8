// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes a
// 400 and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func int64Ptr(v int64) *int64 {
	return &v
}

// activityRecorder writes audit entries on behalf of the current caller.
type activityRecorder struct {
	activity services.ActivityLogService
}

func (r activityRecorder) record(ctx *gin.Context, action, entityType string, entityID *int64, description string) {
	identity := appauth.IdentityFrom(ctx)
	r.activity.LogActivity(ctx.Request.Context(), services.ActivityEntry{
		UserID:      identity.UserIDPtr(),
		Username:    identity.DisplayName(),
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		IPAddress:   identity.IPAddress,
	})
}
