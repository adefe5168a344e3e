package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/ctxkey"
	"github.com/testgen-ai/testgen/relay/credential"
)

// Credential resolves the outbound GitHub credential and stores it under ctxkey.Credential.
// Requests without a usable credential are rejected with 401.
func Credential(resolver credential.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := resolver.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			AbortWithMessage(c, http.StatusUnauthorized, "No GitHub token provided", err)
			return
		}
		c.Set(ctxkey.Credential, token)
		c.Next()
	}
}
