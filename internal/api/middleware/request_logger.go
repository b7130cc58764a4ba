package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)
		c.Set("request_id", reqID)

		c.Next()

		status := c.Writer.Status()
		userID, _ := c.Get("user_id")
		role, _ := c.Get("role")

		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes":      c.Writer.Size(),
			"ip":         c.ClientIP(),
			"user_id":    userID,
			"role":       role,
		})

		// handlers record the full error chain; the response only carries the safe message
		if last := c.Errors.Last(); last != nil {
			entry = entry.WithError(last.Err).WithField("code", utils.CodeOf(last.Err))
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// Recovery turns a handler panic into a 500 and logs the stack.
func Recovery(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.WithFields(logrus.Fields{
					"panic": r,
					"path":  c.Request.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("handler panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
					Code:    utils.CodeInternal,
					Message: "internal error",
				})
			}
		}()
		c.Next()
	}
}
