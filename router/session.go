package router

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/logger"
	"github.com/testgen-ai/testgen/common/random"
)

// oauthStateMaxAge bounds how long a consent may take.
const oauthStateMaxAge = 10 * 60

func newSessions() gin.HandlerFunc {
	secret := config.SessionSecret
	if secret == "" {
		logger.Logger.Warn("SESSION_SECRET is not set, using a random secret; OAuth sign-ins in flight will not survive a restart")
		secret = random.GetUUID() + random.GetUUID()
	}

	var store cookie.Store
	if key, err := base64.StdEncoding.DecodeString(secret); err == nil && len(key) >= 32 {
		store = cookie.NewStore(key)
	} else {
		store = cookie.NewStore([]byte(secret))
	}
	store.Options(sessions.Options{
		Path:     "/api/auth",
		MaxAge:   oauthStateMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions("testgen_session", store)
}
