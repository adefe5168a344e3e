package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/controller"
)

// SetWebRouter serves the API banner on / or, when FRONTEND_DIST_DIR is set, the built
// single-page frontend with index.html as the fallback for unknown non-API paths.
func SetWebRouter(router *gin.Engine, ctl *controller.Controller) {
	if config.FrontendDistDir == "" {
		router.GET("/", ctl.Root)
		return
	}

	router.Use(static.Serve("/", static.LocalFile(config.FrontendDistDir, false)))
	index := filepath.Join(config.FrontendDistDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found", "type": "testgen_error"}})
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.File(index)
	})
}
