package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
)

// ProfileController lets any signed-in user manage their own account.
type ProfileController struct {
	activityRecorder
	userService services.UserService
	authService services.AuthService
}

func NewProfileController(userService services.UserService, authService services.AuthService, activityService services.ActivityLogService) *ProfileController {
	return &ProfileController{
		activityRecorder: activityRecorder{activity: activityService},
		userService:      userService,
		authService:      authService,
	}
}

// GetProfile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user, err := c.userService.GetUserByID(ctx.Request.Context(), appauth.IdentityFrom(ctx).UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// UpdateProfile
// @Summary Update own contact details
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Contact details"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	identity := appauth.IdentityFrom(ctx)
	user, err := c.userService.UpdateProfile(ctx.Request.Context(), identity.UserID, req.Email, req.Phone)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionUpdate, services.EntityUser, int64Ptr(user.ID), "Updated own profile")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// ChangePassword
// @Summary Change own password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Current password incorrect or new password too short"
// @Router /profile/password [put]
func (c *ProfileController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	identity := appauth.IdentityFrom(ctx)
	if err := c.authService.ChangePassword(ctx.Request.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionChangePassword, services.EntityUser, int64Ptr(identity.UserID), "Changed password")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password changed"))
}
