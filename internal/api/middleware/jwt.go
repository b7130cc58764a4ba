package middleware

import (
	"net/http"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/gin-gonic/gin"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// JWTAuth verifies the bearer token and stores user_id and role in the context.
func JWTAuth(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil || len(tokens.Secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
				Code:    utils.CodeInternal,
				Message: "JWT_SECRET is not set",
			})
			return
		}

		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "missing bearer token",
			})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "invalid token",
			})
			return
		}
		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "missing subject",
			})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
