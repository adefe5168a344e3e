package router

import (
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/controller"
	"github.com/testgen-ai/testgen/middleware"
)

// SetRouter installs the shared middlewares and every route on server.
func SetRouter(server *gin.Engine, ctl *controller.Controller) {
	server.Use(middleware.CORS(config.CORSOrigins))
	server.Use(newSessions())

	SetMetricsRouter(server)
	SetApiRouter(server, ctl)
	SetWebRouter(server, ctl)
}
