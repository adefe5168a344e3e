// Package pipeline runs the two generation stages: repository content to test summaries,
// and one summary plus source to test code.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"

	"github.com/testgen-ai/testgen/monitor"
	"github.com/testgen-ai/testgen/relay/content"
	"github.com/testgen-ai/testgen/relay/githost"
	"github.com/testgen-ai/testgen/relay/llm"
	"github.com/testgen-ai/testgen/relay/prompt"
	"github.com/testgen-ai/testgen/relay/response"
)

// DefaultFramework is used when a request names no framework.
const DefaultFramework = "jest"

// SummaryRequest selects repository files to summarize for a framework.
type SummaryRequest struct {
	Repo      githost.RepoRef
	FilePaths []string
	Framework string
}

// CodeRequest asks for the test code of one summary.
type CodeRequest struct {
	FileContents string
	Summary      string
	Framework    string
}

// Pipeline composes content assembly, prompting, model invocation and normalization.
type Pipeline struct {
	// Model is nil when no model is configured.
	Model llm.Invoker
	// Concurrency caps parallel file fetches during content assembly.
	Concurrency int
}

func frameworkOrDefault(fw string) string {
	if strings.TrimSpace(fw) == "" {
		return DefaultFramework
	}
	return fw
}

// GenerateSummaries fetches the requested files, asks the model for test case summaries
// and recovers them as a list. Files that cannot be fetched are left out silently.
func (p *Pipeline) GenerateSummaries(ctx context.Context, fetcher content.FileFetcher, req SummaryRequest) ([]string, error) {
	if p.Model == nil {
		return nil, errors.WithStack(llm.ErrModelUnavailable)
	}
	lg := gmw.GetLogger(ctx)
	fw := frameworkOrDefault(req.Framework)

	asm := &content.Assembler{Fetcher: fetcher, Concurrency: p.Concurrency}
	assembled := asm.Assemble(ctx, req.Repo, req.FilePaths)
	if len(assembled.Included) == 0 {
		lg.Warn("no repository file could be fetched, prompting without code",
			zap.String("repo", req.Repo.String()),
			zap.Int("requested", len(req.FilePaths)))
	}

	text := prompt.BuildSummaryPrompt(prompt.TemplateFor(fw), assembled.Content)
	raw, err := p.invoke(ctx, prompt.StageSummary, fw, text)
	if err != nil {
		return nil, errors.Wrap(err, "generate summaries")
	}

	summaries := response.NormalizeSummaries(raw)
	lg.Debug("summaries generated",
		zap.String("framework", fw),
		zap.Int("files", len(assembled.Included)),
		zap.Int("skipped", len(assembled.Skipped)),
		zap.Int("summaries", len(summaries)))
	return summaries, nil
}

// GenerateCode asks the model for a complete test file and returns its text as is.
func (p *Pipeline) GenerateCode(ctx context.Context, req CodeRequest) (string, error) {
	if p.Model == nil {
		return "", errors.WithStack(llm.ErrModelUnavailable)
	}
	fw := frameworkOrDefault(req.Framework)

	text := prompt.BuildCodePrompt(prompt.TemplateFor(fw), req.Summary, req.FileContents)
	raw, err := p.invoke(ctx, prompt.StageCode, fw, text)
	if err != nil {
		return "", errors.Wrap(err, "generate code")
	}
	return response.NormalizeCode(raw), nil
}

func (p *Pipeline) invoke(ctx context.Context, stage prompt.Stage, fw, text string) (string, error) {
	lg := gmw.GetLogger(ctx)
	tokens := llm.CountTokens(text)
	monitor.RecordPromptTokens(stage.String(), tokens)
	lg.Debug("invoke model",
		zap.String("stage", stage.String()),
		zap.String("framework", fw),
		zap.Int("prompt_tokens", tokens))

	start := time.Now()
	raw, err := p.Model.Generate(ctx, text)
	elapsed := time.Since(start)
	monitor.RecordModelCall(stage.String(), err, elapsed)
	if err != nil {
		lg.Error("model call failed",
			zap.String("stage", stage.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", err
	}
	return raw, nil
}
