package middleware

import (
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/helper"
)

// AbortWithError aborts the request with an error message
func AbortWithError(c *gin.Context, statusCode int, err error) {
	AbortWithMessage(c, statusCode, err.Error(), err)
}

// AbortWithMessage aborts the request with a caller-facing message while logging the underlying error.
func AbortWithMessage(c *gin.Context, statusCode int, message string, err error) {
	logger := gmw.GetLogger(c)
	if statusCode < http.StatusInternalServerError {
		logger.Warn("server abort",
			zap.Int("status_code", statusCode),
			zap.Error(err))
	} else {
		logger.Error("server abort",
			zap.Int("status_code", statusCode),
			zap.Error(err))
	}

	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"message": helper.MessageWithRequestId(message, c.GetString(helper.RequestIdKey)),
			"type":    errorType(statusCode),
		},
	})
	c.Abort()
}

func errorType(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "testgen_error"
	}
}
