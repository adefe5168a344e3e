package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/controller"
	"github.com/testgen-ai/testgen/middleware"
	"github.com/testgen-ai/testgen/relay/credential"
)

func SetApiRouter(router *gin.Engine, ctl *controller.Controller) {
	apiRouter := router.Group("/api")
	if config.EnableGzip {
		apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	{
		apiRouter.GET("/status", ctl.GetStatus)

		authRoute := apiRouter.Group("/auth")
		{
			authRoute.GET("/check", ctl.AuthCheck)
			authRoute.GET("/github", ctl.GitHubAuth)
			authRoute.GET("/github/callback", ctl.GitHubCallback)
		}

		authed := apiRouter.Group("")
		authed.Use(middleware.Credential(credential.Resolver{StaticToken: ctl.StaticToken}))
		{
			authed.GET("/user", ctl.GetUser)
			authed.GET("/repos", ctl.ListRepos)
			authed.POST("/repo/files", ctl.ListRepoFiles)
			authed.POST("/repo/frameworks", ctl.SuggestFrameworks)
			authed.GET("/frameworks", ctl.ListFrameworks)
			authed.POST("/generate/summaries", ctl.GenerateSummaries)
			authed.POST("/generate/code", ctl.GenerateCode)
		}
	}
}
