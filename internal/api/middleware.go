package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/user"
)

// RequireRole ensures the authenticated user holds one of the given roles.
// The role is checked against the database, not the token, so revoked or
// changed roles take effect immediately. MUST be used after auth.AuthRequired.
func RequireRole(userService user.Service, roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
	}
}

// RequireAdmin ensures the authenticated user is an admin.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return RequireRole(userService, user.RoleAdmin)
}
