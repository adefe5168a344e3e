package controller

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/testgen-ai/testgen/common"
	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/ctxkey"
	"github.com/testgen-ai/testgen/relay/githost"
	"github.com/testgen-ai/testgen/relay/pipeline"
)

// Controller serves the HTTP API. It holds no per-request state.
type Controller struct {
	Hosts    *githost.Factory
	Pipeline *pipeline.Pipeline
	OAuth    *oauth2.Config
	// StaticToken mirrors GITHUB_TOKEN and switches the auth endpoints to personal-token mode.
	StaticToken string
}

// NewOAuthConfig builds the GitHub OAuth client from config.
func NewOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GitHubClientId,
		ClientSecret: config.GitHubClientSecret,
		Scopes:       config.GitHubOAuthScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   config.GitHubOAuthAuthorizeURL,
			TokenURL:  config.GitHubOAuthTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// hostClient returns a gateway client for the credential resolved by middleware.Credential.
func (ctl *Controller) hostClient(c *gin.Context) (*githost.Client, error) {
	return ctl.Hosts.New(c.GetString(ctxkey.Credential))
}

// personalToken reports whether a usable service-wide token is configured. Blank values
// count as unset, the same way credential.Resolver treats them.
func (ctl *Controller) personalToken() bool {
	return strings.TrimSpace(ctl.StaticToken) != ""
}

func (ctl *Controller) modelConfigured() bool {
	return ctl.Pipeline != nil && ctl.Pipeline.Model != nil
}

// bindJSON decodes the body into req and runs its validate tags.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	return common.Validate.Struct(req)
}
