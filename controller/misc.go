package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common"
	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/dto"
	"github.com/testgen-ai/testgen/relay/prompt"
)

func (ctl *Controller) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Testgen AI test case generator API"})
}

func (ctl *Controller) GetStatus(c *gin.Context) {
	model := ""
	if ctl.modelConfigured() {
		model = config.GeminiModel
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":          common.Version,
			"start_time":       common.StartTime,
			"auth_method":      ctl.authMethod(),
			"github_oauth":     ctl.OAuth != nil && ctl.OAuth.ClientID != "",
			"github_client_id": config.GitHubClientId,
			"model_configured": ctl.modelConfigured(),
			"model":            model,
		},
	})
}

func (ctl *Controller) AuthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AuthCheck{
		HasToken:   ctl.personalToken(),
		AuthMethod: ctl.authMethod(),
	})
}

func (ctl *Controller) ListFrameworks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frameworks": prompt.Frameworks()})
}

func (ctl *Controller) authMethod() string {
	if ctl.personalToken() {
		return "personal_token"
	}
	return "oauth"
}
