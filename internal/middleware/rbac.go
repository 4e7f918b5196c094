package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
	"github.com/Loggy-dot/Student-Management-system/pkg/response"
)

// RequireRoles lets a request through only when the caller holds one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return authorize(roles, false)
}

// SelfOrRoles also admits a student whose id matches the :id route parameter.
func SelfOrRoles(roles ...models.UserRole) gin.HandlerFunc {
	return authorize(roles, true)
}

func authorize(roles []models.UserRole, allowSelf bool) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}

		if allowSelf && claims.Role == models.RoleStudent {
			if id := c.Param("id"); id != "" && id == claims.UserID {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
