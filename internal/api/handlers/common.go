package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

func requireActor(c *gin.Context) (services.Actor, bool) {
	id, ok := requireUserID(c)
	if !ok {
		return services.Actor{}, false
	}
	role, _ := c.Get("role")
	r, _ := role.(string)
	return services.Actor{ID: id, Role: models.UserRole(r)}, true
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid json body", err))
		return false
	}
	return true
}

func queryLimit(c *gin.Context, def, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, max)
}
