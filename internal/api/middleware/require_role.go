package middleware

import (
	"net/http"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/gin-gonic/gin"
)

func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	allow := map[models.UserRole]struct{}{}
	for _, a := range allowed {
		allow[a] = struct{}{}
	}

	return func(c *gin.Context) {
		v, _ := c.Get("role")
		role, _ := v.(string)
		role = strings.ToLower(strings.TrimSpace(role))

		if _, ok := allow[models.UserRole(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole(models.RoleAdmin) }

func RequireRecruiter() gin.HandlerFunc {
	return RequireRole(models.RoleRecruiter, models.RoleAdmin)
}
