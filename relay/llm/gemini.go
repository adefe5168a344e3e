package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	"google.golang.org/genai"

	"github.com/testgen-ai/testgen/common/config"
)

// Gemini calls generateContent of a single Gemini model.
type Gemini struct {
	cli   *genai.Client
	model string
}

// GeminiOption customizes NewGemini.
type GeminiOption func(*genai.ClientConfig)

// WithHTTPClient replaces the transport used for model calls.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPClient = c
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = baseURL
	}
}

// NewGemini builds an invoker for model. An empty apiKey yields ErrModelUnavailable.
func NewGemini(ctx context.Context, apiKey, model string, opts ...GeminiOption) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.Wrap(ErrModelUnavailable, "no gemini api key configured")
	}
	if model == "" {
		return nil, errors.New("empty gemini model name")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "new gemini client")
	}
	return &Gemini{cli: cli, model: model}, nil
}

// NewGeminiFromConfig builds the invoker from GEMINI_API_KEY, GEMINI_MODEL, GEMINI_TIMEOUT
// and GEMINI_API_BASE.
func NewGeminiFromConfig(ctx context.Context) (*Gemini, error) {
	opts := []GeminiOption{WithHTTPClient(&http.Client{Timeout: config.GeminiTimeout})}
	if config.GeminiAPIBase != "" {
		opts = append(opts, WithBaseURL(config.GeminiAPIBase))
	}
	return NewGemini(ctx, config.GeminiAPIKey, config.GeminiModel, opts...)
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the text of the first candidate.
// Transport and API errors are returned wrapped, so context errors stay detectable.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", errors.Wrapf(err, "generate content with %s", g.model)
	}

	text, ok := candidateText(resp)
	if !ok {
		return "", errors.Wrapf(ErrEmptyResponse, "model %s", g.model)
	}
	return text, nil
}

// candidateText joins the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}
