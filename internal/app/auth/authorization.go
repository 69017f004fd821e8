package auth

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sims/internal/app/models"
)

// Keys under which the auth middleware stores the caller in the gin context.
const (
	ContextUserID    = "userID"
	ContextUsername  = "username"
	ContextRole      = "roleType"
	ContextTokenID   = "tokenID"
	ContextExpiresAt = "tokenExpiresAt"
)

// Identity describes the caller of a request. The zero value is the anonymous
// (system) caller.
type Identity struct {
	UserID    int64
	Username  string
	Role      models.RoleType
	IPAddress string
	TokenID   string
}

// IdentityFrom reads the caller placed in c by the auth middleware. Missing
// values are left empty; IPAddress is always filled in.
func IdentityFrom(c *gin.Context) Identity {
	id := Identity{IPAddress: c.ClientIP()}
	if v, ok := c.Get(ContextUserID); ok {
		id.UserID, _ = v.(int64)
	}
	if v, ok := c.Get(ContextUsername); ok {
		id.Username, _ = v.(string)
	}
	if v, ok := c.Get(ContextRole); ok {
		id.Role, _ = v.(models.RoleType)
	}
	if v, ok := c.Get(ContextTokenID); ok {
		id.TokenID, _ = v.(string)
	}
	return id
}

func (i Identity) Authenticated() bool {
	return i.UserID > 0
}

// HasRole reports whether the caller holds one of roles.
func (i Identity) HasRole(roles ...models.RoleType) bool {
	return slices.Contains(roles, i.Role)
}

// UserIDPtr returns nil for the anonymous caller.
func (i Identity) UserIDPtr() *int64 {
	if i.UserID <= 0 {
		return nil
	}
	id := i.UserID
	return &id
}

// DisplayName is the name recorded in the activity log.
func (i Identity) DisplayName() string {
	if i.Username == "" {
		return "System"
	}
	return i.Username
}
