package router

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/logger"
	"github.com/testgen-ai/testgen/controller"
	"github.com/testgen-ai/testgen/middleware"
	"github.com/testgen-ai/testgen/relay/githost"
	"github.com/testgen-ai/testgen/relay/llm"
	"github.com/testgen-ai/testgen/relay/pipeline"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.ApproximateTokenEnabled = true
	config.FrontendURL = "http://frontend.test"
	os.Exit(m.Run())
}

const goodToken = "gho_good"

// fakeGitHub serves the REST and OAuth endpoints the service talks to.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string]string{
		"src/calc.py": "def add(a, b):\n    return a + b\n",
	}

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+goodToken {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Bad credentials"})
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("/user", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"login": "octocat", "id": 1})
	}))
	mux.HandleFunc("/user/repos", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"name": "calc", "full_name": "octo/calc"}})
	}))
	mux.HandleFunc("/repos/octo/calc/git/trees/HEAD", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"sha": "abc",
			"tree": []map[string]any{
				{"path": "README.md", "type": "blob"},
				{"path": "src", "type": "tree"},
				{"path": "src/calc.py", "type": "blob", "size": 30},
				{"path": "web/app.tsx", "type": "blob", "size": 12},
			},
		})
	}))
	mux.HandleFunc("/repos/octo/calc/languages", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"Python": 3000, "TypeScript": 1200})
	}))
	mux.HandleFunc("/repos/octo/calc", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"name": "calc", "description": "tiny calculator", "language": "Python"})
	}))
	mux.HandleFunc("/repos/octo/calc/contents/", authed(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/repos/octo/calc/contents/")
		src, ok := files[path]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "file", "encoding": "base64", "path": path,
			"content": base64.StdEncoding.EncodeToString([]byte(src)),
		})
	}))
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != "good-code" || r.Form.Get("client_id") != "client-id" {
			writeJSON(w, http.StatusOK, map[string]any{"error": "bad_verification_code"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "gho_new", "token_type": "bearer", "scope": "repo"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type fakeModel struct {
	reply string
	err   error

	mu      sync.Mutex
	prompts []string
}

func (m *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

type testEnv struct {
	engine *gin.Engine
	gh     *httptest.Server
	ctl    *controller.Controller
}

func newTestEnv(t *testing.T, model llm.Invoker) *testEnv {
	t.Helper()
	gh := fakeGitHub(t)
	ctl := &controller.Controller{
		Hosts:    &githost.Factory{HTTPClient: gh.Client(), BaseURL: gh.URL},
		Pipeline: &pipeline.Pipeline{Model: model, Concurrency: 2},
		OAuth: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Scopes:       []string{"repo", "user:email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   gh.URL + "/login/oauth/authorize",
				TokenURL:  gh.URL + "/login/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}

	return &testEnv{engine: buildEngine(ctl), gh: gh, ctl: ctl}
}

func buildEngine(ctl *controller.Controller) *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		gmw.SetLogger(c, logger.Logger)
		c.Next()
	})
	engine.Use(middleware.RequestId())
	SetRouter(engine, ctl)
	return engine
}

func (e *testEnv) do(method, path, token string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRootAndStatus(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["message"], "API")

	w = env.do(http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[struct {
		Data struct {
			AuthMethod      string `json:"auth_method"`
			ModelConfigured bool   `json:"model_configured"`
		} `json:"data"`
	}](t, w)
	assert.Equal(t, "oauth", status.Data.AuthMethod)
	assert.False(t, status.Data.ModelConfigured)

	w = env.do(http.MethodGet, "/api/auth/check", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"has_token": false, "auth_method": "oauth"}`, w.Body.String())
}

func TestProtectedRoutesRequireCredential(t *testing.T) {
	env := newTestEnv(t, &fakeModel{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/repos"},
		{http.MethodPost, "/api/repo/files"},
		{http.MethodPost, "/api/repo/frameworks"},
		{http.MethodGet, "/api/frameworks"},
		{http.MethodPost, "/api/generate/summaries"},
		{http.MethodPost, "/api/generate/code"},
	} {
		w := env.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/api/user", goodToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "octocat", decode[map[string]any](t, w)["login"])

	w = env.do(http.MethodGet, "/api/user", "gho_revoked", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestUpstreamErrorRelay(t *testing.T) {
	const body = `{"message":"rate limited"}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(upstream.Close)

	env := newTestEnv(t, nil)
	env.ctl.Hosts = &githost.Factory{HTTPClient: upstream.Client(), BaseURL: upstream.URL}
	env.engine = buildEngine(env.ctl)

	// the direct proxy hands back the upstream answer as is
	w := env.do(http.MethodGet, "/api/user", goodToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, body, w.Body.String())

	// aggregate endpoints hide it behind a generic failure
	w = env.do(http.MethodGet, "/api/repos", goodToken, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch repositories")
	assert.NotContains(t, w.Body.String(), "rate limited")
}

func TestBlankStaticTokenMeansOAuth(t *testing.T) {
	env := newTestEnv(t, nil)
	env.ctl.StaticToken = "   "
	env.engine = buildEngine(env.ctl)

	w := env.do(http.MethodGet, "/api/auth/check", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"has_token": false, "auth_method": "oauth"}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/auth/github", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), env.gh.URL+"/login/oauth/authorize"),
		w.Header().Get("Location"))
}

func TestStaticTokenWinsOverHeader(t *testing.T) {
	env := newTestEnv(t, nil)
	env.ctl.StaticToken = goodToken
	env.engine = buildEngine(env.ctl)

	w := env.do(http.MethodGet, "/api/user", "gho_someone_else", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/auth/github", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://frontend.test/dashboard?token=personal", w.Header().Get("Location"))
}

func TestListReposAndFiles(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/api/repos", goodToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	repos := decode[[]map[string]any](t, w)
	require.Len(t, repos, 1)
	assert.Equal(t, "calc", repos[0]["name"])

	w = env.do(http.MethodPost, "/api/repo/files", goodToken, map[string]string{"repoUrl": "https://github.com/octo/calc"})
	require.Equal(t, http.StatusOK, w.Code)
	files := decode[[]map[string]any](t, w)
	require.Len(t, files, 2)
	assert.Equal(t, "src/calc.py", files[0]["path"])
	assert.Equal(t, "web/app.tsx", files[1]["path"])

	w = env.do(http.MethodPost, "/api/repo/files", goodToken, map[string]string{"repoUrl": "not a repo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/repo/files", goodToken, map[string]string{"repoUrl": "https://github.com/octo/missing"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch repository files")
	assert.NotContains(t, w.Body.String(), "Not Found")
}

func TestSuggestFrameworks(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/repo/frameworks", goodToken, map[string]string{"repoUrl": "https://github.com/octo/calc"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		PrimaryLanguage     string         `json:"primary_language"`
		AllLanguages        map[string]int `json:"all_languages"`
		SuggestedFrameworks []struct {
			ID string `json:"id"`
		} `json:"suggested_frameworks"`
		RepositoryInfo struct {
			Name string `json:"name"`
		} `json:"repository_info"`
	}](t, w)
	assert.Equal(t, "Python", got.PrimaryLanguage)
	assert.Equal(t, 3000, got.AllLanguages["Python"])
	require.NotEmpty(t, got.SuggestedFrameworks)
	assert.Equal(t, "pytest", got.SuggestedFrameworks[0].ID)
	assert.Equal(t, "calc", got.RepositoryInfo.Name)
}

func TestGenerateSummariesEndToEnd(t *testing.T) {
	model := &fakeModel{reply: "Sure!\n[\"adds two numbers\", \"adds negative numbers\"]"}
	env := newTestEnv(t, model)

	w := env.do(http.MethodPost, "/api/generate/summaries", goodToken, map[string]any{
		"repoUrl":   "https://github.com/octo/calc",
		"filePaths": []string{"src/calc.py", "src/missing.py"},
		"framework": "pytest",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"summaries": ["adds two numbers", "adds negative numbers"]}`, w.Body.String())

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "// File: src/calc.py")
	assert.NotContains(t, model.prompts[0], "src/missing.py")
}

func TestGenerateValidation(t *testing.T) {
	env := newTestEnv(t, &fakeModel{reply: "[]"})

	w := env.do(http.MethodPost, "/api/generate/summaries", goodToken, map[string]any{
		"repoUrl": "https://github.com/octo/calc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/generate/code", goodToken, map[string]any{"summary": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateWithoutModel(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/generate/summaries", goodToken, map[string]any{
		"repoUrl":   "https://github.com/octo/calc",
		"filePaths": []string{"src/calc.py"},
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do(http.MethodPost, "/api/generate/code", goodToken, map[string]any{
		"fileContents": "def add(a, b): return a + b",
		"summary":      "adds numbers",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerateModelFailure(t *testing.T) {
	env := newTestEnv(t, &fakeModel{err: errors.Wrap(context.DeadlineExceeded, "call model")})

	w := env.do(http.MethodPost, "/api/generate/summaries", goodToken, map[string]any{
		"repoUrl":   "https://github.com/octo/calc",
		"filePaths": []string{"src/calc.py"},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate summaries")

	w = env.do(http.MethodPost, "/api/generate/code", goodToken, map[string]any{
		"fileContents": "def add(a, b): return a + b",
		"summary":      "adds numbers",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate test code")
}

func TestGenerateCode(t *testing.T) {
	reply := "import pytest\n\ndef test_add():\n    assert add(1, 2) == 3\n"
	model := &fakeModel{reply: reply}
	env := newTestEnv(t, model)

	w := env.do(http.MethodPost, "/api/generate/code", goodToken, map[string]any{
		"fileContents": "def add(a, b): return a + b",
		"summary":      "adds two numbers",
		"framework":    "pytest",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reply, decode[map[string]string](t, w)["code"])
}

func TestListFrameworks(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/api/frameworks", goodToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string][]string](t, w)["frameworks"]
	assert.Contains(t, got, "generic")
	assert.Contains(t, got, "pytest")
}

func TestOAuthFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/api/auth/github", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	consent, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "client-id", consent.Query().Get("client_id"))
	assert.Equal(t, "repo user:email", consent.Query().Get("scope"))
	state := consent.Query().Get("state")
	require.NotEmpty(t, state)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	t.Run("missing code", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/github/callback", "", nil, cookies...)
		assert.Equal(t, "http://frontend.test?error=no_code", w.Header().Get("Location"))
	})

	t.Run("state mismatch", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/github/callback?code=good-code&state=forged", "", nil, cookies...)
		assert.Equal(t, "http://frontend.test?error=invalid_state", w.Header().Get("Location"))
	})

	t.Run("bad code", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/github/callback?code=bad&state="+state, "", nil, cookies...)
		assert.Equal(t, "http://frontend.test?error=auth_failed", w.Header().Get("Location"))
	})

	t.Run("success", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/github/callback?code=good-code&state="+state, "", nil, cookies...)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "http://frontend.test/dashboard?token=gho_new", w.Header().Get("Location"))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
