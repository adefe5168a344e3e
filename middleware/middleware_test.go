package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testgen-ai/testgen/common/ctxkey"
	"github.com/testgen-ai/testgen/common/graceful"
	"github.com/testgen-ai/testgen/common/helper"
	"github.com/testgen-ai/testgen/common/logger"
	"github.com/testgen-ai/testgen/relay/credential"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		gmw.SetLogger(c, logger.Logger)
		c.Next()
	})
	r.Use(mw...)
	return r
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func TestCredentialMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		static     string
		header     string
		wantStatus int
		wantToken  string
	}{
		{"no header", "", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "", "Basic abc", http.StatusUnauthorized, ""},
		{"empty bearer", "", "Bearer ", http.StatusUnauthorized, ""},
		{"bearer", "", "Bearer gho_caller", http.StatusOK, "gho_caller"},
		{"static wins", "ghp_static", "Bearer gho_caller", http.StatusOK, "ghp_static"},
		{"static without header", "ghp_static", "", http.StatusOK, "ghp_static"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := newEngine(RequestId(), Credential(credential.Resolver{StaticToken: tt.static}))
			r.GET("/api/user", func(c *gin.Context) {
				seen = c.GetString(ctxkey.Credential)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantToken, seen)
			if tt.wantStatus == http.StatusUnauthorized {
				var body errorBody
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "unauthenticated", body.Error.Type)
				assert.Contains(t, body.Error.Message, w.Header().Get(helper.RequestIdKey))
			}
		})
	}
}

func TestRequestIdHeader(t *testing.T) {
	r := newEngine(RequestId())
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, c.Writer.Header().Get(helper.RequestIdKey), c.GetString(helper.RequestIdKey))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(helper.RequestIdKey))
}

func TestRelayPanicRecover(t *testing.T) {
	r := newEngine(RequestId(), RelayPanicRecover())
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "testgen_panic", body.Error.Type)
	assert.Contains(t, body.Error.Message, "kaboom")
}

func TestAbortWithMessageHidesCause(t *testing.T) {
	r := newEngine(RequestId())
	r.GET("/", func(c *gin.Context) {
		AbortWithMessage(c, http.StatusInternalServerError, "Failed to fetch repositories", assert.AnError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "testgen_error", body.Error.Type)
	assert.Contains(t, body.Error.Message, "Failed to fetch repositories")
	assert.NotContains(t, body.Error.Message, assert.AnError.Error())
}

func TestPrometheusMiddlewarePassesThrough(t *testing.T) {
	r := newEngine(PrometheusMiddleware())
	r.GET("/api/status", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGracefulTracker(t *testing.T) {
	r := newEngine(GracefulTracker())
	r.GET("/", func(c *gin.Context) {
		assert.EqualValues(t, 1, graceful.InFlight())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, graceful.InFlight())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:5174"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5174")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5174", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
