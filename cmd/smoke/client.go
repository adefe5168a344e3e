package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/testgen-ai/testgen/dto"
)

const (
	maxResponseBodySize = 1 << 20 // 1 MiB
	maxLoggedBodyRunes  = 2048
)

// sampleSource feeds the code stage, which takes raw source instead of repository paths.
const sampleSource = `function add(a, b) {
  if (typeof a !== "number" || typeof b !== "number") {
    throw new TypeError("add expects numbers");
  }
  return a + b;
}`

// postJSON sends body to path and returns status and the (bounded) response body.
func postJSON(ctx context.Context, client *http.Client, cfg config, path string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIBase+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "testgen-smoke/1.0")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return resp.StatusCode, respBody, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// runSummaries exercises POST /api/generate/summaries for one framework.
func runSummaries(ctx context.Context, client *http.Client, cfg config, framework string) (result testResult) {
	start := time.Now()
	result = testResult{Framework: framework, Stage: stageSummaries}
	defer func() { result.Duration = time.Since(start) }()

	status, body, err := postJSON(ctx, client, cfg, "/api/generate/summaries", dto.GenerateSummariesRequest{
		RepoURL:   cfg.RepoURL,
		FilePaths: cfg.FilePaths,
		Framework: framework,
	})
	result.StatusCode = status
	result.ResponseBody = clampRunes(string(body), maxLoggedBodyRunes)
	if err != nil {
		result.ErrorReason = err.Error()
		return
	}
	if status != http.StatusOK {
		result.ErrorReason = fmt.Sprintf("status %d: %s", status, snippet(body))
		return
	}

	var resp dto.GenerateSummariesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		result.ErrorReason = fmt.Sprintf("decode response: %v", err)
		return
	}
	if len(resp.Summaries) == 0 {
		result.ErrorReason = "no summaries returned"
		return
	}

	result.Success = true
	result.Summaries = resp.Summaries
	return
}

// runCode exercises POST /api/generate/code with the first summary of the previous stage.
func runCode(ctx context.Context, client *http.Client, cfg config, framework, summary string) (result testResult) {
	start := time.Now()
	result = testResult{Framework: framework, Stage: stageCode}
	defer func() { result.Duration = time.Since(start) }()

	status, body, err := postJSON(ctx, client, cfg, "/api/generate/code", dto.GenerateCodeRequest{
		FileContents: sampleSource,
		Summary:      summary,
		Framework:    framework,
	})
	result.StatusCode = status
	result.ResponseBody = clampRunes(string(body), maxLoggedBodyRunes)
	if err != nil {
		result.ErrorReason = err.Error()
		return
	}
	if status != http.StatusOK {
		result.ErrorReason = fmt.Sprintf("status %d: %s", status, snippet(body))
		return
	}

	var resp dto.GenerateCodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		result.ErrorReason = fmt.Sprintf("decode response: %v", err)
		return
	}
	if len(bytes.TrimSpace([]byte(resp.Code))) == 0 {
		result.ErrorReason = "empty code returned"
		return
	}

	result.Success = true
	return
}
