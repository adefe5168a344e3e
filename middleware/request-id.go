package middleware

import (
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/helper"
)

func RequestId() func(c *gin.Context) {
	return func(c *gin.Context) {
		id := helper.GenRequestID()
		c.Set(helper.RequestIdKey, id)
		c.Header(helper.RequestIdKey, id)
		// every log line of this request carries the id
		gmw.SetLogger(c, gmw.GetLogger(c).With(zap.String("request_id", id)))
		c.Next()
	}
}
