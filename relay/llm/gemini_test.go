package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGemini(context.Background(), "test-key", "gemini-test",
		WithHTTPClient(srv.Client()),
		WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	return g
}

func candidates(parts ...string) map[string]any {
	ps := make([]map[string]any, 0, len(parts))
	for _, p := range parts {
		ps = append(ps, map[string]any{"text": p})
	}
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{"role": "model", "parts": ps},
		}},
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotBody string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidates(`["adds two numbers", `, `"rejects strings"]`))
	})

	out, err := g.Generate(context.Background(), "analyze this code")
	require.NoError(t, err)
	assert.Equal(t, `["adds two numbers", "rejects strings"]`, out)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-test:generateContent"), gotPath)
	assert.Contains(t, gotBody, "analyze this code")
	assert.Equal(t, "gemini-test", g.Model())
}

func TestGeminiGenerateWithoutCandidates(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates": []}`)
	})

	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResponse))
	assert.False(t, errors.Is(err, ErrModelUnavailable))
}

func TestGeminiGenerateUpstreamFailure(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`)
	})

	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.False(t, errors.Is(err, ErrModelUnavailable))
}

func TestGeminiGenerateKeepsContextError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidates("unreachable"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), err.Error())
	assert.False(t, errors.Is(err, ErrModelUnavailable))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), " ", "gemini-test")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestInvokerFunc(t *testing.T) {
	var inv Invoker = InvokerFunc(func(ctx context.Context, prompt string) (string, error) {
		return strings.ToUpper(prompt), nil
	})
	out, err := inv.Generate(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "OK", out)
}
