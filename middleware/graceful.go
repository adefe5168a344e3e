package middleware

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/graceful"
)

// GracefulTracker counts in-flight requests for shutdown draining and turns new
// requests away once draining has started.
func GracefulTracker() gin.HandlerFunc {
	return func(c *gin.Context) {
		if graceful.IsDraining() {
			c.Header("Connection", "close")
			AbortWithError(c, http.StatusServiceUnavailable, errors.New("server is shutting down"))
			return
		}
		done := graceful.BeginRequest()
		defer done()
		c.Next()
	}
}
