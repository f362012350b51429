package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

// ErrorMiddleware turns errors attached via c.Error into JSON responses.
// Handlers never write error bodies themselves.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		if status >= 500 {
			log.Error("request failed", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
		}
		c.JSON(status, apperror.ToResponse(err))
	}
}
