package controller

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/ctxkey"
	"github.com/testgen-ai/testgen/common/random"
)

// frontendRedirect sends the browser to the frontend with the given path and query.
func frontendRedirect(c *gin.Context, path string, query url.Values) {
	target := config.FrontendURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	c.Redirect(http.StatusFound, target)
}

func frontendError(c *gin.Context, reason string) {
	frontendRedirect(c, "", url.Values{"error": {reason}})
}

// GitHubAuth starts sign-in. With a personal token configured there is nothing to consent
// to, so the browser goes straight to the dashboard.
func (ctl *Controller) GitHubAuth(c *gin.Context) {
	if ctl.personalToken() {
		frontendRedirect(c, "/dashboard", url.Values{"token": {"personal"}})
		return
	}

	state := random.GetUUID()
	session := sessions.Default(c)
	session.Set(ctxkey.OAuthState, state)
	if err := session.Save(); err != nil {
		gmw.GetLogger(c).Error("save oauth state", zap.Error(err))
		frontendError(c, "auth_failed")
		return
	}

	c.Redirect(http.StatusFound, ctl.OAuth.AuthCodeURL(state))
}

// GitHubCallback exchanges the authorization code for an access token and hands the
// token to the frontend.
func (ctl *Controller) GitHubCallback(c *gin.Context) {
	lg := gmw.GetLogger(c)
	code := c.Query("code")
	if code == "" {
		frontendError(c, "no_code")
		return
	}

	session := sessions.Default(c)
	expected, _ := session.Get(ctxkey.OAuthState).(string)
	session.Delete(ctxkey.OAuthState)
	if err := session.Save(); err != nil {
		lg.Warn("clear oauth state", zap.Error(err))
	}
	if expected == "" || c.Query("state") != expected {
		lg.Warn("oauth state mismatch")
		frontendError(c, "invalid_state")
		return
	}

	ctx := context.WithValue(gmw.Ctx(c), oauth2.HTTPClient, &http.Client{Timeout: config.GitHubTimeout})
	token, err := ctl.OAuth.Exchange(ctx, code)
	if err != nil {
		lg.Error("exchange oauth code", zap.Error(err))
		frontendError(c, exchangeFailure(err))
		return
	}

	frontendRedirect(c, "/dashboard", url.Values{"token": {token.AccessToken}})
}

// exchangeFailure maps an exchange error to the reason shown by the frontend.
func exchangeFailure(err error) string {
	if strings.Contains(err.Error(), "missing access_token") {
		return "no_token"
	}
	return "auth_failed"
}
