package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/helper"
	"github.com/testgen-ai/testgen/common/logger"
)

func RelayPanicRecover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Logger.Error("panic detected",
					zap.Any("panic", err),
					zap.String("stacktrace", string(debug.Stack())),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(helper.RequestIdKey)))
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"message": helper.MessageWithRequestId(fmt.Sprintf("panic detected: %v", err), c.GetString(helper.RequestIdKey)),
						"type":    "testgen_panic",
					},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
