package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	activityRecorder
	authService services.AuthService
	userService services.UserService
	logger      zerolog.Logger
}

func NewAuthController(
	authService services.AuthService,
	userService services.UserService,
	activityService services.ActivityLogService,
	logger zerolog.Logger,
) *AuthController {
	return &AuthController{
		activityRecorder: activityRecorder{activity: activityService},
		authService:      authService,
		userService:      userService,
		logger:           logger,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user by username and password and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account inactive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Str("clientIp", ctx.ClientIP()).Msg("Login rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The caller is not in the context yet, so the entry is built by hand.
	c.activity.LogActivity(ctx.Request.Context(), services.ActivityEntry{
		UserID:      int64Ptr(result.User.ID),
		Username:    result.User.Username,
		Action:      services.ActionLogin,
		EntityType:  services.EntityAuthentication,
		Description: "User logged in",
		IPAddress:   ctx.ClientIP(),
	})

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: result.Token.Token,
			TokenType:   "Bearer",
			ExpiresIn:   result.Token.ExpiresIn,
			ExpiresAt:   result.Token.ExpiresAt,
		},
		User: dto.NewUserResponse(result.User),
	}))
}

// Logout revokes the presented token
// @Summary Logout
// @Description Revokes the current access token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	identity := appauth.IdentityFrom(ctx)

	var expiresAt time.Time
	if v, ok := ctx.Get(appauth.ContextExpiresAt); ok {
		expiresAt, _ = v.(time.Time)
	}

	if err := c.authService.Logout(ctx.Request.Context(), identity.TokenID, expiresAt); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.record(ctx, services.ActionLogout, services.EntityAuthentication, nil, "User logged out")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Me returns the authenticated account
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	identity := appauth.IdentityFrom(ctx)
	user, err := c.userService.GetUserByID(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}
