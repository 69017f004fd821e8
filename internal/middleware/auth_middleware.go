package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sims/internal/app/auth"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/pkg/auth"
	"github.com/yigit/sims/internal/pkg/logger"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	revocation auth.RevocationStore
}

// NewAuthMiddleware creates a new AuthMiddleware. revocation may be nil.
func NewAuthMiddleware(jwtService *auth.JWTService, revocation auth.RevocationStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		revocation: revocation,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		if m.revocation != nil {
			revoked, err := m.revocation.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: the token is otherwise valid and expires on its own.
				logger.Warn().Err(err).Str("tokenId", claims.ID).Msg("Token revocation check failed")
			} else if revoked {
				abortUnauthorized(c, dto.ErrorCodeRevokedToken, "Token has been revoked")
				return
			}
		}

		c.Set(appauth.ContextUserID, claims.UserID)
		c.Set(appauth.ContextUsername, claims.Username)
		c.Set(appauth.ContextRole, models.RoleType(claims.RoleType))
		c.Set(appauth.ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(appauth.ContextExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RoleRequired lets the request through only when the caller holds one of roles.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := appauth.IdentityFrom(c)
		if !identity.Authenticated() {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		if !identity.HasRole(roles...) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
