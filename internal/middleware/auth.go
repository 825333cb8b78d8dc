package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yashika222/ReliefNet/internal/constants"
	apierrors "github.com/yashika222/ReliefNet/internal/errors"
	"github.com/yashika222/ReliefNet/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		if role := session.Get(constants.ContextKeyUserRole); role != nil {
			c.Set(constants.ContextKeyUserRole, role)
		}
		c.Next()
	}
}

// RequireRole restricts a route to callers holding the given role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, exists := GetUserRole(c)
		if !exists || callerRole != role {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	role, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	switch v := role.(type) {
	case models.Role:
		return v, true
	case string:
		return models.Role(v), true
	default:
		return "", false
	}
}
