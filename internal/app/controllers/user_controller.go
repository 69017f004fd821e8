package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

// UserController handles user account administration
type UserController struct {
	activityRecorder
	userService services.UserService
	authService services.AuthService
}

func NewUserController(userService services.UserService, authService services.AuthService, activityService services.ActivityLogService) *UserController {
	return &UserController{
		activityRecorder: activityRecorder{activity: activityService},
		userService:      userService,
		authService:      authService,
	}
}

// GetAllUsers lists user accounts
// @Summary List users
// @Description Lists every account, optionally filtered by role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (Admin, Student, Falculty)"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	var (
		users []*models.User
		err   error
	)
	if role := ctx.Query("role"); role != "" {
		users, err = c.userService.GetUsersByRole(ctx.Request.Context(), models.RoleType(role))
	} else {
		users, err = c.userService.GetAllUsers(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponses(users)))
}

// GetUserByID retrieves user information by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// CreateUser
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	hashed, err := c.authService.HashPassword(req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: hashed,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.RoleType(req.Role),
		Status:   req.Status,
	}
	if err := c.userService.CreateUser(ctx.Request.Context(), user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionCreate, services.EntityUser, int64Ptr(user.ID),
		fmt.Sprintf("Created user %s with role %s", user.Username, user.Role))
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// UpdateUser
// @Summary Update user
// @Description Replaces the account. An empty password keeps the current one.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Account"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user := &models.User{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.RoleType(req.Role),
		Status:   req.Status,
	}
	if req.Password != "" {
		hashed, err := c.authService.HashPassword(req.Password)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		user.Password = hashed
	}

	if err := c.userService.UpdateUser(ctx.Request.Context(), user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionUpdate, services.EntityUser, int64Ptr(id), "Updated user "+user.Username)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// DeleteUser
// @Summary Delete user
// @Description Deletes the account; a linked student record and its enrollments go with it.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Cannot delete own account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if appauth.IdentityFrom(ctx).UserID == id {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("id", "you cannot delete your own account"))
		return
	}

	deleted, err := c.userService.DeleteUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !deleted {
		middleware.HandleAPIError(ctx, apperrors.ErrUserNotFound)
		return
	}

	c.record(ctx, services.ActionDelete, services.EntityUser, int64Ptr(id), fmt.Sprintf("Deleted user %d", id))
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted"))
}

