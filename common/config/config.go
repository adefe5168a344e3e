package config

import (
	"strings"
	"time"

	"github.com/testgen-ai/testgen/common/env"
)

var (
	// ServerPort overrides the --port flag when running inside container or PaaS environments.
	ServerPort = strings.TrimSpace(env.String("PORT", ""))
	// GinMode allows forcing Gin into release mode (or other modes) without recompiling.
	GinMode = strings.TrimSpace(env.String("GIN_MODE", ""))

	// DebugEnabled toggles verbose structured logging when DEBUG=true.
	DebugEnabled = env.Bool("DEBUG", false)

	// GitHubToken is the service-wide personal access token. When set it authorizes every
	// outbound GitHub call and takes priority over any caller-supplied bearer token.
	GitHubToken = strings.TrimSpace(env.String("GITHUB_TOKEN", ""))
	// GitHubClientId and GitHubClientSecret configure the OAuth consent flow.
	GitHubClientId     = env.String("GITHUB_CLIENT_ID", "")
	GitHubClientSecret = env.String("GITHUB_CLIENT_SECRET", "")
	// GitHubAPIBase points the gateway at a different API root (GitHub Enterprise, test servers).
	GitHubAPIBase = env.String("GITHUB_API_BASE", "https://api.github.com/")
	// GitHubOAuthAuthorizeURL and GitHubOAuthTokenURL override the OAuth endpoints.
	GitHubOAuthAuthorizeURL = env.String("GITHUB_OAUTH_AUTHORIZE_URL", "https://github.com/login/oauth/authorize")
	GitHubOAuthTokenURL     = env.String("GITHUB_OAUTH_TOKEN_URL", "https://github.com/login/oauth/access_token")
	// GitHubOAuthScopes are requested on the consent screen.
	GitHubOAuthScopes = env.List("GITHUB_OAUTH_SCOPES", []string{"repo", "user:email"})
	// GitHubTimeout bounds every outbound GitHub request. Zero disables the timeout.
	GitHubTimeout = time.Duration(env.Int("GITHUB_TIMEOUT", 30)) * time.Second

	// GeminiAPIKey enables the language model. Without it generation endpoints answer 503.
	GeminiAPIKey = strings.TrimSpace(env.String("GEMINI_API_KEY", ""))
	// GeminiModel selects the Gemini model used for both generation stages.
	GeminiModel = env.String("GEMINI_MODEL", "gemini-1.5-flash")
	// GeminiTimeout bounds a single model call. Zero disables the timeout.
	GeminiTimeout = time.Duration(env.Int("GEMINI_TIMEOUT", 120)) * time.Second
	// GeminiAPIBase overrides the Gemini endpoint, mainly for proxies and tests.
	GeminiAPIBase = strings.TrimSpace(env.String("GEMINI_API_BASE", ""))
	// ApproximateTokenEnabled estimates prompt tokens from byte length instead of loading
	// the tiktoken vocabulary, which needs network access on first use.
	ApproximateTokenEnabled = env.Bool("APPROXIMATE_TOKEN", false)

	// FrontendURL is where OAuth redirects land.
	FrontendURL = strings.TrimSuffix(env.String("FRONTEND_URL", "http://localhost:5174"), "/")
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins = env.List("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"})
	// FrontendDistDir serves a built frontend from disk when set.
	FrontendDistDir = strings.TrimSpace(env.String("FRONTEND_DIST_DIR", ""))

	// ContentFetchConcurrency caps parallel file fetches while assembling repository content.
	// A value of 1 fetches strictly one file at a time.
	ContentFetchConcurrency = func() int {
		v := env.Int("CONTENT_FETCH_CONCURRENCY", 4)
		if v < 1 {
			return 1
		}
		return v
	}()

	// SessionSecret signs the cookie that carries the OAuth state between redirect and callback.
	SessionSecret = env.String("SESSION_SECRET", "")

	// EnablePrometheusMetrics exposes the /metrics endpoint for Prometheus scrapers when true.
	EnablePrometheusMetrics = env.Bool("ENABLE_PROMETHEUS_METRICS", true)
	// EnableGzip compresses JSON responses.
	EnableGzip = env.Bool("ENABLE_GZIP", false)

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout = time.Duration(env.Int("SHUTDOWN_TIMEOUT", 30)) * time.Second

	// LogPushAPI defines the webhook endpoint for escalated log alerts.
	LogPushAPI = env.String("LOG_PUSH_API", "")
	// LogPushType labels outbound log alerts so downstream processors can route them.
	LogPushType = env.String("LOG_PUSH_TYPE", "")
	// LogPushToken authenticates outbound log alert requests.
	LogPushToken = env.String("LOG_PUSH_TOKEN", "")
	// OnlyOneLogFile writes all logs into a single file instead of one per day.
	OnlyOneLogFile = env.Bool("ONLY_ONE_LOG_FILE", false)

	// SmokeAPIBase is the testgen instance targeted by cmd/smoke.
	SmokeAPIBase = env.String("SMOKE_API_BASE", "")
	// SmokeToken is sent as the bearer credential by cmd/smoke.
	SmokeToken = env.String("SMOKE_TOKEN", "")
	// SmokeRepoURL and SmokeFilePaths select the repository content cmd/smoke generates for.
	SmokeRepoURL   = env.String("SMOKE_REPO_URL", "")
	SmokeFilePaths = env.String("SMOKE_FILE_PATHS", "")
	// SmokeFrameworks restricts the sweep to a subset of frameworks.
	SmokeFrameworks = env.String("SMOKE_FRAMEWORKS", "")
)
