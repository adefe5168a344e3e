// Package llm sends finished prompts to the language model and returns its raw text.
package llm

import (
	"context"

	"github.com/Laisky/errors/v2"
)

var (
	// ErrModelUnavailable means no model is configured.
	ErrModelUnavailable = errors.New("language model unavailable")
	// ErrEmptyResponse means the model answered without any text.
	ErrEmptyResponse = errors.New("language model returned no text")
)

// Invoker performs one model call per prompt. Implementations do not retry.
type Invoker interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// InvokerFunc adapts a plain function to Invoker.
type InvokerFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f InvokerFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
